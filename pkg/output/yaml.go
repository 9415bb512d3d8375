package output

import (
	"gopkg.in/yaml.v3"

	"github.com/mattcl/confpiler/pkg/logger"
)

func (f *formatter) formatYAML(items map[string]string) (string, error) {
	f.log.Debug("Formatting YAML output")

	if items == nil {
		items = map[string]string{}
	}

	bytes, err := yaml.Marshal(items)
	if err != nil {
		f.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to marshal YAML")
		return "", err
	}

	return string(bytes), nil
}
