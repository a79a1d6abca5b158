package herdlib

// Config is the YAML-loadable client configuration.
//
// Exactly one of Gateway or Etcd.Endpoints must be set for the grpc
// communicator; the inmemory communicator needs neither and runs a mock
// cluster inside the process.
type Config struct {
	// ClientID identifies this client in envelope messages and in the
	// cluster's lock table. Defaults to a random id.
	ClientID string `yaml:"client_id"`

	// Gateway is the static address of a cluster gateway.
	Gateway string `yaml:"gateway"`

	// Communicator selects the transport: "grpc" (default) or "inmemory".
	Communicator string `yaml:"communicator"`

	// LogDir, when set, routes logs to <LogDir>/<ClientID>.log; otherwise
	// logs go through logrus to stderr.
	LogDir   string `yaml:"log_dir"`
	LogLevel string `yaml:"log_level"`

	Etcd EtcdConfig `yaml:"etcd"`
}

// EtcdConfig enables gateway discovery instead of a static address.
type EtcdConfig struct {
	Endpoints []string `yaml:"endpoints"`
	Prefix    string   `yaml:"prefix"`
}
