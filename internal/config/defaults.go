package config

const (
	defaultLogDir              = "~/.local/share/prepress/logs"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultAnalysisWorkers     = 4
	defaultMaxPDFPages         = 5
	defaultWeightQuality       = 40
	defaultWeightCost          = 30
	defaultWeightSustainabilty = 15
	defaultWeightDurability    = 15
	defaultProductType         = "tshirt"
	defaultMaterialType        = "standard"
	defaultQuantity            = 100
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Analysis: Analysis{
			Workers:     defaultAnalysisWorkers,
			MaxPDFPages: defaultMaxPDFPages,
		},
		Weights: Weights{
			Quality:        defaultWeightQuality,
			Cost:           defaultWeightCost,
			Sustainability: defaultWeightSustainabilty,
			Durability:     defaultWeightDurability,
		},
		Costing: Costing{
			DefaultProductType:  defaultProductType,
			DefaultMaterialType: defaultMaterialType,
			DefaultQuantity:     defaultQuantity,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
