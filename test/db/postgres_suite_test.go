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

package db_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	. "github.com/onsi/ginkgo/v2" //nolint:revive
	. "github.com/onsi/gomega"    //nolint:revive

	"github.com/nscaledev/jsonplaceholder-e2e/test/api"
	"github.com/nscaledev/jsonplaceholder-e2e/test/db"
)

func TestPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "PostgreSQL Integration Suite")
}

// startInstance provisions an instance for the enclosing container and
// schedules its removal, which runs whether the specs pass or fail.
func startInstance(ctx context.Context) *db.Instance {
	config, err := api.LoadTestConfig()
	Expect(err).NotTo(HaveOccurred())

	if config.SkipIntegration {
		Skip("SKIP_INTEGRATION is set")
	}

	instance, err := db.Start(ctx, db.WithImage(config.PostgresImage))
	Expect(err).NotTo(HaveOccurred(), "PostgreSQL container should start")

	GinkgoWriter.Printf("PostgreSQL container started at %s:%s\n", instance.Host, instance.Port)

	DeferCleanup(func() {
		GinkgoWriter.Printf("Terminating PostgreSQL container at %s:%s\n", instance.Host, instance.Port)
		Expect(instance.Terminate(context.Background())).To(Succeed())
	})

	return instance
}

var _ = Describe("PostgreSQL Integration", Ordered, func() {
	var instance *db.Instance

	BeforeAll(func(ctx SpecContext) {
		instance = startInstance(ctx)
	}, NodeTimeout(5*time.Minute))

	It("should expose the fixed database and credentials", func() {
		Expect(instance.Database).To(Equal("testdb"))
		Expect(instance.Username).To(Equal("test"))
		Expect(instance.Password).To(Equal("test"))
		Expect(instance.ConnString).To(ContainSubstring(instance.Port))
	})

	It("should persist and query data", func(ctx SpecContext) {
		err := instance.WithConnection(ctx, func(conn *pgx.Conn) error {
			Expect(db.EnsureUsersTable(ctx, conn)).To(Succeed())

			id, err := db.InsertUser(ctx, conn, "Alice")
			Expect(err).NotTo(HaveOccurred())

			name, err := db.UserName(ctx, conn, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(Equal("Alice"), "The retrieved name should match the inserted value")

			return nil
		})
		Expect(err).NotTo(HaveOccurred())
	})

	It("should assign id 1 to the first row of a fresh table", func(ctx SpecContext) {
		err := instance.WithConnection(ctx, func(conn *pgx.Conn) error {
			Expect(db.EnsureUsersTable(ctx, conn)).To(Succeed())
			Expect(db.ResetUsers(ctx, conn)).To(Succeed())

			id, err := db.InsertUser(ctx, conn, "Alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal(1))

			name, err := db.UserName(ctx, conn, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(Equal("Alice"))

			return nil
		})
		Expect(err).NotTo(HaveOccurred())
	})

	It("should round trip every inserted name by its generated id", func(ctx SpecContext) {
		err := instance.WithConnection(ctx, func(conn *pgx.Conn) error {
			Expect(db.EnsureUsersTable(ctx, conn)).To(Succeed())

			users := make([]db.User, 0, 10)

			for range 10 {
				user := db.User{
					Name: db.GenerateUserName(),
				}

				id, err := db.InsertUser(ctx, conn, user.Name)
				Expect(err).NotTo(HaveOccurred())

				user.ID = id
				users = append(users, user)
			}

			for _, user := range users {
				Expect(db.UserName(ctx, conn, user.ID)).To(Equal(user.Name))
			}

			return nil
		})
		Expect(err).NotTo(HaveOccurred())
	})

	It("should report missing users", func(ctx SpecContext) {
		err := instance.WithConnection(ctx, func(conn *pgx.Conn) error {
			Expect(db.EnsureUsersTable(ctx, conn)).To(Succeed())

			_, err := db.UserName(ctx, conn, -1)

			return err
		})
		Expect(err).To(MatchError(db.ErrUserNotFound))
	})

	It("should release the connection when a statement fails", func(ctx SpecContext) {
		var used *pgx.Conn

		err := instance.WithConnection(ctx, func(conn *pgx.Conn) error {
			used = conn

			Expect(db.EnsureUsersTable(ctx, conn)).To(Succeed())

			_, err := db.InsertUser(ctx, conn, strings.Repeat("x", db.MaxNameLength+1))

			return err
		})
		Expect(err).To(MatchError(ContainSubstring("value too long")))
		Expect(used).NotTo(BeNil())
		Expect(used.IsClosed()).To(BeTrue(), "Connection should be closed after a failure")
	})

	It("should release the connection when the callback panics", func(ctx SpecContext) {
		var used *pgx.Conn

		Expect(func() {
			_ = instance.WithConnection(ctx, func(conn *pgx.Conn) error {
				used = conn
				panic("boom")
			})
		}).To(PanicWith("boom"))

		Expect(used).NotTo(BeNil())
		Expect(used.IsClosed()).To(BeTrue(), "Connection should be closed after a panic")
	})
})

var _ = Describe("PostgreSQL Teardown", func() {
	It("should refuse connections once terminated", func(ctx SpecContext) {
		instance := startInstance(ctx)

		conn, err := instance.Connect(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(conn.Close(ctx)).To(Succeed())

		Expect(instance.Terminate(ctx)).To(Succeed())

		// Terminating again is a no-op, as is the scheduled cleanup.
		Expect(instance.Terminate(ctx)).To(Succeed())

		_, err = instance.Connect(ctx)
		Expect(err).To(MatchError(db.ErrTerminated))
	}, NodeTimeout(5*time.Minute))
})
