package mongo

import "time"

// Config represents the configuration for the database.
type Config struct {
	ConnectionURL     string        `env:"MONGODB_URL,required"`                                // ConnectionURL is the URL of the database.
	Database          string        `env:"MONGODB_DATABASE" envDefault:"sessionkit"`            // Database holds the sessions collection.
	SessionCollection string        `env:"MONGODB_SESSION_COLLECTION" envDefault:"sessions"`    // SessionCollection is the collection used by Store.
	ConnectTimeout    time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`            // ConnectTimeout is the timeout for connecting to the database.
	MaxPoolSize       uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"100"`              // MaxPoolSize is the maximum number of pooled connections.
	MinPoolSize       uint64        `env:"MONGODB_MIN_POOL_SIZE" envDefault:"1"`                // MinPoolSize is the minimum number of pooled connections.
	MaxConnIdleTime   time.Duration `env:"MONGODB_MAX_CONN_IDLE_TIME" envDefault:"300s"`        // MaxConnIdleTime is how long a pooled connection may stay idle.
	RetryWrites       bool          `env:"MONGODB_RETRY_WRITES" envDefault:"true"`              // RetryWrites enables driver-level write retries.
	RetryReads        bool          `env:"MONGODB_RETRY_READS" envDefault:"true"`               // RetryReads enables driver-level read retries.
	RetryAttempts     int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`               // RetryAttempts is the number of connection attempts.
	RetryInterval     time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"5s"`              // RetryInterval is the pause between attempts.
}
