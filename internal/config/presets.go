package config

var Presets = map[string]map[string]*Config{
	"cooling": {
		"coffee": {
			Model: "cooling", Integrator: "euler", Dt: 1, End: 30,
			Init:   InitConfig{Temp: 90},
			Params: ParamsConfig{Rate: 0.01, Ambient: 22},
		},
		"milk": {
			Model: "cooling", Integrator: "euler", Dt: 1, End: 15,
			Init:   InitConfig{Temp: 5},
			Params: ParamsConfig{Rate: 0.133, Ambient: 22},
		},
		"espresso": {
			Model: "cooling", Integrator: "rk4", Dt: 0.5, End: 10,
			Init:   InitConfig{Temp: 93},
			Params: ParamsConfig{Rate: 0.05, Ambient: 22},
		},
		"iced_tea": {
			Model: "cooling", Integrator: "euler", Dt: 1, End: 60,
			Init:   InitConfig{Temp: 4},
			Params: ParamsConfig{Rate: 0.02, Ambient: 28},
		},
	},
	"twobody": {
		"mug": {
			Model: "twobody", Integrator: "rk4", Dt: 0.5, End: 120,
			Init:   InitConfig{Temp: 90, Temp2: 22},
			Params: ParamsConfig{Coupling: 0.05, Loss1: 0.01, Loss2: 0.02, Ambient: 22},
		},
		"preheated": {
			Model: "twobody", Integrator: "rk4", Dt: 0.5, End: 120,
			Init:   InitConfig{Temp: 90, Temp2: 60},
			Params: ParamsConfig{Coupling: 0.05, Loss1: 0.01, Loss2: 0.02, Ambient: 22},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
