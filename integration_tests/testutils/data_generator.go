//go:build integration

package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	authdb "github.com/raynzz/eventdesk/app/modules/auth/infrastructure/repositories"
	migrationdomain "github.com/raynzz/eventdesk/app/modules/migration/domain"
)

// TestDataGenerator builds realistic records from a seeded faker.
type TestDataGenerator struct {
	faker *gofakeit.Faker
}

// NewTestDataGenerator uses seed when given, a time based seed otherwise.
func NewTestDataGenerator(seed ...uint64) *TestDataGenerator {
	s := uint64(time.Now().UnixNano())
	if len(seed) > 0 {
		s = seed[0]
	}
	return &TestDataGenerator{faker: gofakeit.New(s)}
}

// Session returns a session that expires after ttl.
func (g *TestDataGenerator) Session(now time.Time, ttl time.Duration) *authdb.Session {
	return &authdb.Session{
		ID:              uuid.New(),
		UserID:          g.faker.UUID(),
		Email:           g.faker.Email(),
		AccessToken:     g.faker.LetterN(32),
		RefreshToken:    g.faker.LetterN(32),
		AccessExpiresAt: now.Add(15 * time.Minute).UTC().Truncate(time.Microsecond),
		ExpiresAt:       now.Add(ttl).UTC().Truncate(time.Microsecond),
	}
}

// MigrationReport returns a finished run with providers migrated and one
// failed record.
func (g *TestDataGenerator) MigrationReport(startedAt time.Time) *migrationdomain.Report {
	r := migrationdomain.NewReport(uuid.New(), startedAt.UTC().Truncate(time.Microsecond), g.faker.Bool(), false)
	n := g.faker.Number(2, 6)
	r.AddRead(migrationdomain.LegacyProviders, n+1)
	for range n {
		r.AddCreated(migrationdomain.LegacyProviders)
	}
	r.Fail(migrationdomain.LegacyProviders, g.faker.Numerify("###"), migrationdomain.ErrMissingName)
	r.FinishedAt = r.StartedAt.Add(time.Duration(g.faker.Number(1, 30)) * time.Second)
	return r
}

// ProviderName returns a company name.
func (g *TestDataGenerator) ProviderName() string { return g.faker.Company() }
