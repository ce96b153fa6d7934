package shipsync

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"strings"
)

const (
	// DefaultConfigPath is the conventional lookup location used when no
	// explicit configuration path is supplied.
	DefaultConfigPath = "la-aws-data.bin"
	// ConfigKeyEnv names the environment variable holding the passphrase
	// that unseals the encrypted configuration form.
	ConfigKeyEnv = "SHIPSYNC_CONFIG_KEY"

	binConfigExt = ".bin"
)

// Config holds the credentials and endpoint for one batch run. It is
// resolved once per invocation and read-only afterwards.
type Config struct {
	Region  string `json:"region"`
	Service string `json:"service"`
	BaseURL string `json:"baseUrl"`
	APIKey  string `json:"apiKey"`
	// AccessKey and SecretKey may be left empty, in which case the AWS
	// default credential chain is used for request signing.
	AccessKey string `json:"accessKey"`
	SecretKey string `json:"secretKey"`
}

// Validate reports the first missing required field. AccessKey and
// SecretKey must be set or omitted as a pair.
func (c Config) Validate() error {
	switch {
	case c.Region == "":
		return MissingConfigFieldError{Field: "region"}
	case c.Service == "":
		return MissingConfigFieldError{Field: "service"}
	case c.BaseURL == "":
		return MissingConfigFieldError{Field: "baseUrl"}
	case c.APIKey == "":
		return MissingConfigFieldError{Field: "apiKey"}
	case c.AccessKey == "" && c.SecretKey != "":
		return MissingConfigFieldError{Field: "accessKey"}
	case c.AccessKey != "" && c.SecretKey == "":
		return MissingConfigFieldError{Field: "secretKey"}
	}
	return nil
}

// ConfigLoader resolves a Config from a file. Implementations differ only
// in the at-rest form they understand; both produce the same Config.
type ConfigLoader interface {
	Load(path string) (Config, error)
}

// JSONConfigLoader loads a plain JSON configuration file.
type JSONConfigLoader struct{}

func (JSONConfigLoader) Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// BinConfigLoader loads the encrypted-at-rest configuration form: a single
// base64 line sealing the JSON document with AES-256-GCM. The key is
// derived from the Key field, or from the ConfigKeyEnv passphrase when Key
// is nil.
type BinConfigLoader struct {
	Key []byte
}

func (l BinConfigLoader) Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	line, _, _ := strings.Cut(string(data), "\n")
	blob, err := base64.StdEncoding.DecodeString(strings.TrimSpace(line))
	if err != nil {
		return cfg, err
	}
	gcm, err := newConfigCipher(l.Key)
	if err != nil {
		return cfg, err
	}
	if len(blob) < gcm.NonceSize() {
		return cfg, errors.New("encrypted configuration is truncated")
	}
	plain, err := gcm.Open(nil, blob[:gcm.NonceSize()], blob[gcm.NonceSize():], nil)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(plain, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SealConfig produces the single-line encrypted form read by
// BinConfigLoader. It is used by operators to provision config files.
func SealConfig(cfg Config, key []byte) (string, error) {
	plain, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}
	gcm, err := newConfigCipher(key)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	blob := gcm.Seal(nonce, nonce, plain, nil)
	return base64.StdEncoding.EncodeToString(blob), nil
}

func newConfigCipher(key []byte) (cipher.AEAD, error) {
	if key == nil {
		passphrase := os.Getenv(ConfigKeyEnv)
		if passphrase == "" {
			return nil, errors.New(ConfigKeyEnv + " is not set")
		}
		sum := sha256.Sum256([]byte(passphrase))
		key = sum[:]
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// ResolveConfig loads and validates the configuration for one run. The
// loader is selected by file shape: .bin files use the encrypted form,
// everything else is plain JSON. An empty path falls back to
// DefaultConfigPath.
func ResolveConfig(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}
	var loader ConfigLoader = JSONConfigLoader{}
	if strings.HasSuffix(path, binConfigExt) {
		loader = BinConfigLoader{}
	}
	cfg, err := loader.Load(path)
	if err != nil {
		return Config{}, ConfigNotResolvedError{Path: path, Cause: err}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
