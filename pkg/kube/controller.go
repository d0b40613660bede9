package kube

import (
	"context"

	"github.com/envoyproxy/go-control-plane/pkg/log"
	"github.com/pkg/errors"
	"github.com/rueian/idalloc/pkg/alloc"
	v1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/controller-runtime/pkg/builder"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/config"
	"sigs.k8s.io/controller-runtime/pkg/manager"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"
)

var (
	scheme = runtime.NewScheme()
)

func init() {
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
}

func NewManager(namespace string) (manager.Manager, error) {
	conf, err := config.GetConfig()
	if err != nil {
		return nil, err
	}
	return manager.New(conf, manager.Options{Scheme: scheme, Namespace: namespace, MetricsBindAddress: "0"})
}

// Leases hands out one id per key.
type Leases interface {
	Acquire(key string) (uint64, error)
	Release(key string) error
}

func SetupEndpointController(mgr manager.Manager, logger log.Logger, leases Leases) error {
	return builder.ControllerManagedBy(mgr).
		For(&v1.Endpoints{}).
		Complete(NewEndpointController(mgr.GetClient(), logger, leases))
}

func NewEndpointController(c client.Client, logger log.Logger, leases Leases) *EndpointController {
	return &EndpointController{Client: c, logger: logger, leases: leases}
}

// EndpointController keeps one id leased for every Endpoints object that
// exists, keyed by namespace/name.
type EndpointController struct {
	client.Client
	logger log.Logger
	leases Leases
}

func (c *EndpointController) Reconcile(ctx context.Context, req reconcile.Request) (reconcile.Result, error) {
	key := req.NamespacedName.String()

	endpoints := &v1.Endpoints{}
	if err := c.Get(ctx, req.NamespacedName, endpoints); err != nil {
		if apierrors.IsNotFound(err) {
			return reconcile.Result{}, c.release(key)
		}
		return reconcile.Result{}, err
	}
	if !endpoints.DeletionTimestamp.IsZero() {
		return reconcile.Result{}, c.release(key)
	}

	id, err := c.leases.Acquire(key)
	if err != nil {
		if errors.Is(err, alloc.ErrExhausted) {
			c.logger.Warnf("no id left for %s, requeue", key)
			return reconcile.Result{Requeue: true}, nil
		}
		return reconcile.Result{}, err
	}
	c.logger.Debugf("%s holds id %d", key, id)
	return reconcile.Result{}, nil
}

func (c *EndpointController) release(key string) error {
	if err := c.leases.Release(key); err != nil {
		return errors.Wrapf(err, "release %s", key)
	}
	c.logger.Debugf("%s released its id", key)
	return nil
}
