package spectrum

import (
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Returns a decode hook that parses Preset values from their catalog keys.
// This supports configuration solutions like spf13/viper that use
// mapstructure to unmarshal config files.
func PresetDecodeHook() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(Preset(0)) {
			return data, nil
		}
		name, ok := data.(string)
		if !ok {
			return data, nil
		}
		return ParsePreset(name)
	}
}
