/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package db provides a disposable PostgreSQL instance for integration tests,
// and the small users store that is exercised against it.
package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	DefaultImage          = "postgres:16-alpine"
	DefaultDatabase       = "testdb"
	DefaultUsername       = "test"
	DefaultPassword       = "test"
	DefaultStartupTimeout = 2 * time.Minute
	DefaultConnectTimeout = 10 * time.Second

	postgresPort = "5432/tcp"
)

var ErrTerminated = errors.New("instance has been terminated")

type options struct {
	image          string
	startupTimeout time.Duration
	connectTimeout time.Duration
}

// Option modifies instance provisioning.
type Option func(*options)

// WithImage selects the container image, an empty value keeps the default.
func WithImage(image string) Option {
	return func(o *options) {
		if image != "" {
			o.image = image
		}
	}
}

// WithStartupTimeout bounds how long to wait for the server to accept connections.
func WithStartupTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.startupTimeout = timeout
	}
}

// WithConnectTimeout bounds each connection attempt.
func WithConnectTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.connectTimeout = timeout
	}
}

// Instance is a running, disposable PostgreSQL server.
type Instance struct {
	container      *postgres.PostgresContainer
	connectTimeout time.Duration

	ConnString string
	Host       string
	Port       string
	Database   string
	Username   string
	Password   string

	lock       sync.Mutex
	terminated bool
}

// Start provisions a new instance and blocks until it accepts connections.
func Start(ctx context.Context, opts ...Option) (*Instance, error) {
	o := &options{
		image:          DefaultImage,
		startupTimeout: DefaultStartupTimeout,
		connectTimeout: DefaultConnectTimeout,
	}

	for _, opt := range opts {
		opt(o)
	}

	// The server logs readiness twice, once for the init scripts and once
	// for real, only the second is safe to connect to.
	container, err := postgres.Run(ctx, o.image,
		postgres.WithDatabase(DefaultDatabase),
		postgres.WithUsername(DefaultUsername),
		postgres.WithPassword(DefaultPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(o.startupTimeout),
			wait.ForListeningPort(postgresPort).
				WithStartupTimeout(o.startupTimeout),
		),
	)
	if err != nil {
		// A partially started container still needs removing.
		if container != nil {
			err = errors.Join(err, container.Terminate(context.WithoutCancel(ctx)))
		}

		return nil, fmt.Errorf("starting postgres container: %w", err)
	}

	instance, err := newInstance(ctx, container, o)
	if err != nil {
		return nil, errors.Join(err, container.Terminate(context.WithoutCancel(ctx)))
	}

	return instance, nil
}

func newInstance(ctx context.Context, container *postgres.PostgresContainer, o *options) (*Instance, error) {
	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting postgres host: %w", err)
	}

	port, err := container.MappedPort(ctx, postgresPort)
	if err != nil {
		return nil, fmt.Errorf("getting postgres port: %w", err)
	}

	connString, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, fmt.Errorf("getting postgres connection string: %w", err)
	}

	return &Instance{
		container:      container,
		connectTimeout: o.connectTimeout,
		ConnString:     connString,
		Host:           host,
		Port:           port.Port(),
		Database:       DefaultDatabase,
		Username:       DefaultUsername,
		Password:       DefaultPassword,
	}, nil
}

// Terminate stops and removes the instance along with all its state.
// Calling it more than once is harmless.
func (i *Instance) Terminate(ctx context.Context) error {
	i.lock.Lock()
	defer i.lock.Unlock()

	if i.terminated {
		return nil
	}

	if err := i.container.Terminate(ctx); err != nil {
		return fmt.Errorf("terminating postgres container: %w", err)
	}

	i.terminated = true

	return nil
}

// Connect opens a new connection, the caller owns closing it.
func (i *Instance) Connect(ctx context.Context) (*pgx.Conn, error) {
	config, err := pgx.ParseConfig(i.ConnString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	config.ConnectTimeout = i.connectTimeout

	conn, err := pgx.ConnectConfig(ctx, config)
	if err != nil {
		if i.isTerminated() {
			err = errors.Join(ErrTerminated, err)
		}

		return nil, fmt.Errorf("connecting to %s:%s: %w", i.Host, i.Port, err)
	}

	return conn, nil
}

// WithConnection runs the callback with a connection that is closed on
// every exit path, including a panic in the callback.
func (i *Instance) WithConnection(ctx context.Context, callback func(*pgx.Conn) error) (err error) {
	conn, err := i.Connect(ctx)
	if err != nil {
		return err
	}

	defer func() {
		// The caller's context may be what failed, so close regardless.
		if closeErr := conn.Close(context.WithoutCancel(ctx)); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("closing connection: %w", closeErr))
		}
	}()

	return callback(conn)
}

func (i *Instance) isTerminated() bool {
	i.lock.Lock()
	defer i.lock.Unlock()

	return i.terminated
}
