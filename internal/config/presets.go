package config

import "sort"

type Preset struct {
	Description string
	Launch      LaunchConfig
}

var Presets = map[string]Preset{
	"hop": {
		Description: "50 m/s lift-off from the pad",
		Launch:      LaunchConfig{Altitude: "0", Velocity: "50", Mass: "10", StartTime: "0", EndTime: "10"},
	},
	"freefall": {
		Description: "dropped from 100 m at rest",
		Launch:      LaunchConfig{Altitude: "100", Velocity: "0", Mass: "10", StartTime: "0", EndTime: "5"},
	},
	"burnout": {
		Description: "long burn that empties a 10 kg rocket",
		Launch:      LaunchConfig{Altitude: "0", Velocity: "0", Mass: "10", StartTime: "0", EndTime: "120"},
	},
	"reverse": {
		Description: "integrate backwards from t=10 to t=0",
		Launch:      LaunchConfig{Altitude: "0", Velocity: "50", Mass: "10", StartTime: "10", EndTime: "0"},
	},
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
