package config

import (
	"fmt"
	"os"
)

func Template() string {
	return policyTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(policyTemplate), 0o600)
}

const policyTemplate = `# compat: reject text only when it is neither 4 bytes nor ASCII.
# strict: require exactly 4 bytes.
parse_mode = "compat"

# Treat a lowercase third byte as fatal when deciding chunk handling.
strict_reserved = false

# Know IHDR, PLTE, IDAT, IEND and the standard ancillary chunks.
include_standard = true

# Additional chunk types this consumer understands.
known = ["prVt"]

# chunkctl settings
log_level = "info"
output = "text"
`
