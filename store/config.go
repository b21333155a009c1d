package store

// DefaultTableName is used when Config.TableName is empty.
const DefaultTableName = "items"

// Config holds configuration for the Store.
type Config struct {
	// TableName is the name of the items table.
	// Default: "items"
	TableName string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		TableName: DefaultTableName,
	}
}

// validate fills in defaults for empty values.
func (c *Config) validate() {
	if c.TableName == "" {
		c.TableName = DefaultTableName
	}
}
