package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// applyEnvOverrides copies environment variables named by `env` tags into
// cfg. A tag may list alternatives ("PORT,SERVER_PORT"); the first one that
// is set wins. It returns the variables that were applied.
func applyEnvOverrides(cfg *Config) ([]string, error) {
	var applied []string
	err := walkEnvFields(reflect.ValueOf(cfg).Elem(), "", &applied)
	return applied, err
}

func walkEnvFields(section reflect.Value, prefix string, applied *[]string) error {
	typ := section.Type()
	for i := 0; i < section.NumField(); i++ {
		field := section.Field(i)
		meta := typ.Field(i)

		key := strings.SplitN(meta.Tag.Get("yaml"), ",", 2)[0]
		if prefix != "" {
			key = prefix + "." + key
		}

		if field.Kind() == reflect.Struct {
			if err := walkEnvFields(field, key, applied); err != nil {
				return err
			}
			continue
		}

		name, value, ok := lookupEnvTag(meta.Tag.Get("env"))
		if !ok {
			continue
		}
		if err := setFromString(field, value); err != nil {
			return fmt.Errorf("%s from %s: %w", key, name, err)
		}
		*applied = append(*applied, name)
	}
	return nil
}

func lookupEnvTag(tag string) (string, string, bool) {
	if tag == "" {
		return "", "", false
	}
	for _, name := range strings.Split(tag, ",") {
		name = strings.TrimSpace(name)
		if value, ok := os.LookupEnv(name); ok {
			return name, strings.TrimSpace(value), true
		}
	}
	return "", "", false
}

func setFromString(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", value)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type %s", field.Kind())
	}
	return nil
}
