package output

import (
	"encoding/json"

	"github.com/mattcl/confpiler/pkg/logger"
)

func (f *formatter) formatJSON(items map[string]string) (string, error) {
	f.log.Debug("Formatting JSON output")

	if items == nil {
		items = map[string]string{}
	}

	bytes, err := json.Marshal(items)
	if err != nil {
		f.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to marshal JSON")
		return "", err
	}

	return string(bytes) + "\n", nil
}
