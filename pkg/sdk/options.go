package ftfacade

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs     []string
	username  string
	password  string
	db        int
	hashMode  bool
	keyPrefix string

	index       string
	companyDict string
	productDict string

	workers    int
	ratePerSec float64
	maxDocs    int
	seed       uint64
	source     Source

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis configures the engine address and password.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithACL sets the ACL username and logical database.
func WithACL(username string, db int) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
		c.db = db
	})
}

// WithHashMode writes documents as hashes under keyPrefix instead of FT.ADD.
// Required for engines that dropped FT.ADD.
func WithHashMode(keyPrefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.hashMode = true
		c.keyPrefix = keyPrefix
	})
}

// WithNames overrides the index and suggestion dictionary names.
// Empty values keep the defaults (searchIndex, autoCompanyIndex, autoProductIndex).
func WithNames(index, companyDict, productDict string) Option {
	return optionFunc(func(c *clientConfig) {
		c.index = index
		c.companyDict = companyDict
		c.productDict = productDict
	})
}

// WithWorkers caps concurrent writes during Index. Default: 16.
func WithWorkers(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.workers = n
	})
}

// WithRateLimit throttles Index to perSec writes per second. Default: unlimited.
func WithRateLimit(perSec float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.ratePerSec = perSec
	})
}

// WithMaxDocs caps the document count of a single Index call. Default: 100000.
func WithMaxDocs(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxDocs = n
	})
}

// WithSeed makes the generated catalog reproducible. Ignored when WithSource is set.
func WithSeed(seed uint64) Option {
	return optionFunc(func(c *clientConfig) {
		c.seed = seed
	})
}

// WithSource replaces the generated catalog with caller-supplied values.
func WithSource(s Source) Option {
	return optionFunc(func(c *clientConfig) {
		c.source = s
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
