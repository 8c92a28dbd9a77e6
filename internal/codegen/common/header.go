package common

import "fmt"

// FileHeader returns the banner placed at the top of every generated file.
func FileHeader(comment, lang string) string {
	version, err := GetVersion()
	if err != nil {
		version = "unknown"
	}
	return fmt.Sprintf("%s Auto-generated by flatgen %s (%s). DO NOT EDIT.\n", comment, version, lang)
}
