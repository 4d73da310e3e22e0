package store_test

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/kubev2v/transcription-service/internal/store"
	"github.com/kubev2v/transcription-service/internal/store/model"
)

var _ = Describe("transcription store", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		db, err := store.InitDB(sqliteConfig())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration(context.TODO())).To(Succeed())
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM transcriptions;")
	})

	Context("create", func() {
		It("assigns an id and keeps the caller's creation time", func() {
			createdAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
			record, err := s.Transcription().Create(context.TODO(), model.Transcription{
				AudioURL:      "https://blob/a.wav",
				Filename:      "a.wav",
				Transcription: "hello world",
				CreatedAt:     createdAt,
			})
			Expect(err).To(BeNil())
			Expect(record.ID).NotTo(Equal(uuid.UUID{}))
			Expect(record.CreatedAt.Equal(createdAt)).To(BeTrue())
			Expect(record.Status).To(Equal(model.TranscriptionStatusCompleted))

			got, err := s.Transcription().Get(context.TODO(), record.ID)
			Expect(err).To(BeNil())
			Expect(got.Filename).To(Equal("a.wav"))
			Expect(got.AudioURL).To(Equal("https://blob/a.wav"))
			Expect(got.Transcription).To(Equal("hello world"))
		})

		It("assigns a creation time when none is given", func() {
			before := time.Now().UTC().Add(-time.Second)
			record, err := s.Transcription().Create(context.TODO(), model.Transcription{Filename: "b.wav", AudioURL: "u"})
			Expect(err).To(BeNil())
			Expect(record.CreatedAt.After(before)).To(BeTrue())
		})

		It("stores the placeholder when there is no text", func() {
			reason := "corrupt audio"
			record, err := s.Transcription().Create(context.TODO(), model.Transcription{
				Filename:      "c.wav",
				AudioURL:      "u",
				Status:        model.TranscriptionStatusFailed,
				FailureReason: &reason,
			})
			Expect(err).To(BeNil())

			got, err := s.Transcription().Get(context.TODO(), record.ID)
			Expect(err).To(BeNil())
			Expect(got.Transcription).To(Equal(model.NoTranscriptionPlaceholder))
			Expect(got.Failed()).To(BeTrue())
			Expect(*got.FailureReason).To(Equal("corrupt audio"))
		})

		It("rejects an empty filename", func() {
			_, err := s.Transcription().Create(context.TODO(), model.Transcription{AudioURL: "u", Transcription: "t"})
			Expect(errors.Is(err, store.ErrInvalidRecord)).To(BeTrue())

			count := 0
			Expect(gormdb.Raw("SELECT COUNT(*) FROM transcriptions;").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(0))
		})
	})

	Context("get", func() {
		It("returns ErrRecordNotFound for an unknown id", func() {
			_, err := s.Transcription().Get(context.TODO(), uuid.New())
			Expect(errors.Is(err, store.ErrRecordNotFound)).To(BeTrue())
		})
	})

	Context("list", func() {
		create := func(filename string, createdAt time.Time) {
			_, err := s.Transcription().Create(context.TODO(), model.Transcription{
				Filename:      filename,
				AudioURL:      "https://blob/" + filename,
				Transcription: "text of " + filename,
				CreatedAt:     createdAt,
			})
			Expect(err).To(BeNil())
		}

		It("returns the newest record first", func() {
			base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
			create("first.wav", base)
			create("third.wav", base.Add(2*time.Hour))
			create("second.wav", base.Add(time.Hour))

			records, err := s.Transcription().List(context.TODO(), nil, nil)
			Expect(err).To(BeNil())
			Expect(records).To(HaveLen(3))
			Expect(records[0].Filename).To(Equal("third.wav"))
			Expect(records[1].Filename).To(Equal("second.wav"))
			Expect(records[2].Filename).To(Equal("first.wav"))

			create("fourth.wav", base.Add(3*time.Hour))
			records, err = s.Transcription().List(context.TODO(), nil, nil)
			Expect(err).To(BeNil())
			Expect(records).To(HaveLen(4))
			Expect(records[0].Filename).To(Equal("fourth.wav"))
		})

		It("returns identical sequences on repeated reads", func() {
			same := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
			create("a.wav", same)
			create("b.wav", same)
			create("c.wav", same)

			first, err := s.Transcription().List(context.TODO(), nil, nil)
			Expect(err).To(BeNil())
			second, err := s.Transcription().List(context.TODO(), nil, nil)
			Expect(err).To(BeNil())
			Expect(second).To(HaveLen(len(first)))
			for i := range first {
				Expect(second[i].ID).To(Equal(first[i].ID))
			}
		})

		It("filters and limits", func() {
			base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
			create("a.wav", base)
			create("a.wav", base.Add(time.Minute))
			create("b.wav", base.Add(2*time.Minute))

			records, err := s.Transcription().List(context.TODO(), store.NewTranscriptionQueryFilter().ByFilename("a.wav"), nil)
			Expect(err).To(BeNil())
			Expect(records).To(HaveLen(2))

			records, err = s.Transcription().List(context.TODO(), nil,
				store.NewTranscriptionQueryOptions().WithSortOrder(store.SortByOldest).WithLimit(1))
			Expect(err).To(BeNil())
			Expect(records).To(HaveLen(1))
			Expect(records[0].Filename).To(Equal("a.wav"))
			Expect(records[0].CreatedAt.Equal(base)).To(BeTrue())
		})

		It("returns an empty list when there are no records", func() {
			records, err := s.Transcription().List(context.TODO(), nil, nil)
			Expect(err).To(BeNil())
			Expect(records).To(HaveLen(0))
		})
	})

	Context("ping", func() {
		It("reaches the database", func() {
			Expect(s.Ping(context.TODO())).To(Succeed())
		})
	})
})
