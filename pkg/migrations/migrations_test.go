package migrations_test

import (
	"os"
	"path"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/kubev2v/transcription-service/internal/config"
	"github.com/kubev2v/transcription-service/internal/store"
	"github.com/kubev2v/transcription-service/pkg/migrations"
)

var _ = Describe("migrations", Ordered, func() {
	var (
		cfg    *config.Config
		s      store.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		cfg = config.NewDefault()
		cfg.Database.Type = "sqlite"
		cfg.Database.Name = "file:migrations?mode=memory&cache=shared"

		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
	})

	AfterAll(func() {
		s.Close()
	})

	Context("store migrations", Ordered, func() {
		It("fails to migrate the db -- migration folder does not exists", func() {
			cfg.Service.MigrationFolder = "some folder"
			err := migrations.MigrateStore(gormdb, cfg)
			Expect(err).NotTo(BeNil())
		})

		It("successfully migrates the db from a folder", func() {
			currentFolder, err := os.Getwd()
			Expect(err).To(BeNil())
			cfg.Service.MigrationFolder = path.Join(currentFolder, "sql")

			err = migrations.MigrateStore(gormdb, cfg)
			Expect(err).To(BeNil())

			Expect(gormdb.Migrator().HasTable("transcriptions")).To(BeTrue())
			Expect(gormdb.Migrator().HasIndex("transcriptions", "idx_transcriptions_created_at")).To(BeTrue())
		})

		It("is a no-op when run again with the embedded migrations", func() {
			cfg.Service.MigrationFolder = ""
			err := migrations.MigrateStore(gormdb, cfg)
			Expect(err).To(BeNil())
			Expect(gormdb.Migrator().HasTable("transcriptions")).To(BeTrue())
		})
	})
})
