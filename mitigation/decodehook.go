package mitigation

import (
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Returns a decode hook that parses Filter values from their catalog keys.
// This supports configuration solutions like spf13/viper that use
// mapstructure to unmarshal config files.
func FilterDecodeHook() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(Filter(0)) {
			return data, nil
		}
		name, ok := data.(string)
		if !ok {
			return data, nil
		}
		return ParseFilter(name)
	}
}
