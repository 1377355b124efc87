package registry

import (
	"context"
	"log"
	"net"
	"net/http"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

func Run(ctx context.Context, opts *Options) error {
	log := stdr.NewWithOptions(log.Default(), stdr.Options{LogCaller: stdr.Error})
	ctx = logr.NewContext(ctx, log)
	registry, err := NewRegistry(ctx, opts)
	if err != nil {
		return err
	}

	handler := registry.route()
	handler = LoggingFilter(log, handler)

	if opts.OIDC.Issuer != "" {
		handler, err = NewOIDCAuthFilter(ctx, opts.OIDC.Issuer, handler)
		if err != nil {
			return err
		}
	}

	server := http.Server{
		Addr:    opts.Listen,
		Handler: handler,
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}
	go func() {
		<-ctx.Done()
		server.Shutdown(ctx)
	}()
	if opts.TLS.CertFile != "" && opts.TLS.KeyFile != "" {
		tlsconfig, err := opts.TLS.ToTLSConfig()
		if err != nil {
			return err
		}
		server.TLSConfig = tlsconfig
		log.Info("registry listening", "https", opts.Listen)
		return server.ListenAndServeTLS("", "")
	}
	log.Info("registry listening", "http", opts.Listen)
	return server.ListenAndServe()
}
