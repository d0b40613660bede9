package config

import "github.com/kelseyhightower/envconfig"

type Daemon struct {
	GRPCPort      uint32 `envconfig:"GRPC_PORT"      default:"18100"`
	MetricsPort   uint32 `envconfig:"METRICS_PORT"   default:"18101"`
	IDMin         uint64 `envconfig:"ID_MIN"         default:"0"`
	IDMax         uint64 `envconfig:"ID_MAX"         default:"4294967295"`
	ReusePolicy   string `envconfig:"REUSE_POLICY"   default:"fast"`
	Debug         bool   `envconfig:"DEBUG"          default:"false"`
	KubeEnabled   bool   `envconfig:"KUBE_ENABLED"   default:"false"`
	KubeNamespace string `envconfig:"KUBE_NAMESPACE" default:""`
}

type Client struct {
	Addr string `envconfig:"IDALLOC_ADDR" default:"localhost:18100"`
}

func GetDaemon() (out Daemon, err error) {
	err = envconfig.Process("", &out)
	return
}

func GetClient() (out Client, err error) {
	err = envconfig.Process("", &out)
	return
}
