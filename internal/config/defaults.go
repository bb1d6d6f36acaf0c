package config

import (
	"log"

	"github.com/spf13/viper"
)

// ActivityCategory names one billable activity and its invoice-number code.
type ActivityCategory struct {
	Name string `json:"name" mapstructure:"name"`
	Code string `json:"code" mapstructure:"code"`
}

// BusinessDefaults seed owner settings records when none exist yet.
type BusinessDefaults struct {
	TaxRate        float64            `mapstructure:"taxRate"`
	CurrencyCode   string             `mapstructure:"currencyCode"`
	CurrencySymbol string             `mapstructure:"currencySymbol"`
	Categories     []ActivityCategory `mapstructure:"categories"`
}

func builtinDefaults() BusinessDefaults {
	return BusinessDefaults{
		TaxRate:        0,
		CurrencyCode:   "USD",
		CurrencySymbol: "$",
		Categories: []ActivityCategory{
			{Name: "Teaching", Code: "TCH"},
			{Name: "Development", Code: "DEV"},
			{Name: "Consulting", Code: "CNS"},
		},
	}
}

// LoadBusinessDefaults reads facturio.yml when present, falling back to the
// built-in defaults.
func LoadBusinessDefaults() BusinessDefaults {
	v := viper.New()
	v.SetConfigName("facturio")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/facturio")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("facturio.yml unreadable, using built-in defaults: %v", err)
		}
		return builtinDefaults()
	}

	defaults := builtinDefaults()
	if err := v.UnmarshalKey("business", &defaults); err != nil {
		log.Printf("facturio.yml invalid, using built-in defaults: %v", err)
		return builtinDefaults()
	}
	if defaults.CurrencyCode == "" {
		defaults.CurrencyCode = "USD"
	}
	if defaults.CurrencySymbol == "" {
		defaults.CurrencySymbol = "$"
	}
	if len(defaults.Categories) == 0 {
		defaults.Categories = builtinDefaults().Categories
	}
	return defaults
}
