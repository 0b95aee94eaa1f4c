package repository

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"talentdesk-backend/internal/apperror"
	"talentdesk-backend/internal/talent/domain"
	"talentdesk-backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func strPtr(s string) *string { return &s }

// backends returns one fresh repository per implementation
func backends(t *testing.T) map[string]func(t *testing.T) TalentRepository {
	return map[string]func(t *testing.T) TalentRepository{
		"memory": func(t *testing.T) TalentRepository {
			return NewMemoryTalentRepository()
		},
		"gorm": func(t *testing.T) TalentRepository {
			db, err := database.NewSQLiteConnection(":memory:", database.Options{LogLevel: logger.Silent})
			require.NoError(t, err)
			t.Cleanup(func() { _ = database.Close(db) })
			require.NoError(t, db.AutoMigrate(&domain.Talent{}))
			return NewGormTalentRepository(db)
		},
	}
}

func forEachBackend(t *testing.T, fn func(t *testing.T, repo TalentRepository)) {
	for name, newRepo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			fn(t, newRepo(t))
		})
	}
}

func newTalent(talentID, fullName string) *domain.Talent {
	t := &domain.Talent{TalentID: talentID, FullName: fullName}
	t.Normalize()
	return t
}

func mustCreate(t *testing.T, repo TalentRepository, talent *domain.Talent) *domain.Talent {
	t.Helper()
	created, err := repo.Create(context.Background(), talent)
	require.NoError(t, err)
	return created
}

func seedN(t *testing.T, repo TalentRepository, n int) []*domain.Talent {
	t.Helper()
	out := make([]*domain.Talent, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, mustCreate(t, repo, newTalent(fmt.Sprintf("talent-%03d", i), fmt.Sprintf("Person %d", i))))
	}
	return out
}

func TestTalentRepository_ListPaging(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo TalentRepository) {
		ctx := context.Background()
		seedN(t, repo, 7)

		for _, limit := range []int{1, 3, 7, 10} {
			for page := 1; page <= 5; page++ {
				items, total, err := repo.List(ctx, ListFilter{Page: page, Limit: limit})
				require.NoError(t, err)
				assert.Equal(t, int64(7), total, "total must not depend on paging")

				want := 7 - (page-1)*limit
				if want < 0 {
					want = 0
				}
				if want > limit {
					want = limit
				}
				assert.Len(t, items, want, "page %d limit %d", page, limit)
				for i := 1; i < len(items); i++ {
					assert.Less(t, items[i-1].ID, items[i].ID)
				}
			}
		}
	})
}

func TestTalentRepository_ListBeyondEndIsEmptyNotNil(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo TalentRepository) {
		seedN(t, repo, 2)

		items, total, err := repo.List(context.Background(), ListFilter{Page: 9, Limit: 100})
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
		assert.Equal(t, int64(2), total)
	})
}

func TestTalentRepository_ListOffsetOverflow(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo TalentRepository) {
		seedN(t, repo, 3)

		for _, filter := range []ListFilter{
			{Page: math.MaxInt/2 + 2, Limit: 2},
			{Page: math.MaxInt, Limit: math.MaxInt},
			{Page: 2, Limit: math.MaxInt},
		} {
			items, total, err := repo.List(context.Background(), filter)
			require.NoError(t, err)
			assert.NotNil(t, items)
			assert.Empty(t, items, "page %d limit %d", filter.Page, filter.Limit)
			assert.Equal(t, int64(3), total)
		}

		items, _, err := repo.List(context.Background(), ListFilter{Page: 1, Limit: math.MaxInt})
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})
}

func TestListFilter_Offset(t *testing.T) {
	off, ok := ListFilter{Page: 3, Limit: 10}.Offset()
	assert.True(t, ok)
	assert.Equal(t, 20, off)

	_, ok = ListFilter{Page: math.MaxInt/2 + 2, Limit: 2}.Offset()
	assert.False(t, ok)
}

func TestTalentRepository_ListKeyword(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo TalentRepository) {
		ctx := context.Background()

		jane := newTalent("talent-002", "Jane Smith")
		mustCreate(t, repo, jane)

		byEmail := newTalent("talent-010", "Bob")
		byEmail.Email = strPtr("bob@Acme.io")
		mustCreate(t, repo, byEmail)

		byNote := newTalent("talent-011", "Carol")
		byNote.Note = strPtr("Met at the ACME conference")
		mustCreate(t, repo, byNote)

		byLink := newTalent("talent-012", "Dan")
		byLink.ExternalLinks = domain.CloneLinks([]domain.ExternalLink{
			{Name: "acme", URL: "https://github.com/dan"},
			{Name: "Site", URL: "https://dan.ACME.dev"},
		})
		mustCreate(t, repo, byLink)

		linkNameOnly := newTalent("talent-013", "Eve")
		linkNameOnly.ExternalLinks = domain.CloneLinks([]domain.ExternalLink{{Name: "Acme", URL: "https://eve.dev"}})
		mustCreate(t, repo, linkNameOnly)

		for _, kw := range []string{"smith", "SMITH", "Smith"} {
			items, total, err := repo.List(ctx, ListFilter{Page: 1, Limit: 100, Keyword: kw})
			require.NoError(t, err)
			require.Len(t, items, 1, kw)
			assert.Equal(t, int64(1), total)
			assert.Equal(t, "Jane Smith", items[0].FullName)
		}

		items, total, err := repo.List(ctx, ListFilter{Page: 1, Limit: 100, Keyword: "acme"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		names := make([]string, 0, len(items))
		for _, it := range items {
			names = append(names, it.FullName)
		}
		assert.Equal(t, []string{"Bob", "Carol", "Dan"}, names, "link names are not searched")

		elodie := newTalent("talent-014", "Élodie Durand")
		elodie.Note = strPtr("Ingénieure à ZÜRICH")
		mustCreate(t, repo, elodie)
		for _, kw := range []string{"élodie", "ÉLODIE", "zürich", "INGÉNIEURE"} {
			items, _, err := repo.List(ctx, ListFilter{Page: 1, Limit: 100, Keyword: kw})
			require.NoError(t, err)
			require.Len(t, items, 1, kw)
			assert.Equal(t, "Élodie Durand", items[0].FullName)
		}
	})
}

func TestTalentRepository_ListKeywordIsLiteral(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo TalentRepository) {
		mustCreate(t, repo, newTalent("a", "Percent 100% Sure"))
		mustCreate(t, repo, newTalent("b", "Plain Name"))

		items, _, err := repo.List(context.Background(), ListFilter{Page: 1, Limit: 10, Keyword: "%"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "a", items[0].TalentID)

		items, _, err = repo.List(context.Background(), ListFilter{Page: 1, Limit: 10, Keyword: "_"})
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestTalentRepository_ListEmailOnly(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo TalentRepository) {
		ctx := context.Background()

		withEmail := newTalent("t1", "Jane Smith")
		withEmail.Email = strPtr("jane@example.com")
		mustCreate(t, repo, withEmail)

		mustCreate(t, repo, newTalent("t2", "John Smith"))

		otherWithEmail := newTalent("t3", "Alex Chen")
		otherWithEmail.Email = strPtr("alex@example.com")
		mustCreate(t, repo, otherWithEmail)

		items, total, err := repo.List(ctx, ListFilter{Page: 1, Limit: 100, EmailOnly: true})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		for _, it := range items {
			assert.True(t, it.HasEmail())
		}

		items, total, err = repo.List(ctx, ListFilter{Page: 1, Limit: 100, EmailOnly: true, Keyword: "smith"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, "t1", items[0].TalentID)
	})
}

func TestTalentRepository_CreateAndFind(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo TalentRepository) {
		ctx := context.Background()

		in := newTalent("talent-001", "John Doe")
		in.TalentURL = strPtr("https://example.com/john-doe")
		in.Nationality = strPtr("American")
		in.Location = strPtr("New York, NY")
		in.ExternalLinks = domain.CloneLinks([]domain.ExternalLink{
			{Name: "LinkedIn", URL: "https://linkedin.com/in/johndoe"},
			{Name: "GitHub", URL: "https://github.com/johndoe"},
		})
		in.Important = true

		created := mustCreate(t, repo, in)
		assert.NotZero(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())
		assert.False(t, created.UpdatedAt.IsZero())

		got, err := repo.FindByTalentID(ctx, "talent-001")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "John Doe", got.FullName)
		assert.Equal(t, "https://example.com/john-doe", *got.TalentURL)
		assert.Equal(t, "American", *got.Nationality)
		assert.Equal(t, "New York, NY", *got.Location)
		assert.Equal(t, []domain.ExternalLink(in.ExternalLinks), []domain.ExternalLink(got.ExternalLinks))
		assert.Nil(t, got.Email)
		assert.True(t, got.Important)
		assert.WithinDuration(t, created.CreatedAt, got.CreatedAt, time.Second)

		byID, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "talent-001", byID.TalentID)

		_, err = repo.Create(ctx, newTalent("talent-001", "Someone Else"))
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})
}

func TestTalentRepository_FindMissing(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo TalentRepository) {
		ctx := context.Background()

		_, err := repo.FindByID(ctx, 42)
		assert.ErrorIs(t, err, apperror.ErrNotFound)

		_, err = repo.FindByTalentID(ctx, "nobody")
		assert.ErrorIs(t, err, apperror.ErrNotFound)

		_, err = repo.Update(ctx, 42, domain.TalentPatch{Note: domain.Some(strPtr("x"))})
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestTalentRepository_IDsAreMonotonicAfterDelete(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo TalentRepository) {
		ctx := context.Background()
		all := seedN(t, repo, 3)

		ok, err := repo.Delete(ctx, all[2].ID)
		require.NoError(t, err)
		require.True(t, ok)

		next := mustCreate(t, repo, newTalent("talent-new", "Newcomer"))
		assert.Greater(t, next.ID, all[2].ID)
	})
}

func TestTalentRepository_UpdateChangesOnlyPresentFields(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo TalentRepository) {
		ctx := context.Background()

		in := newTalent("talent-005", "David Kim")
		in.Email = strPtr("david@example.com")
		in.Important = true
		in.ExternalLinks = domain.CloneLinks([]domain.ExternalLink{{Name: "GitHub", URL: "https://github.com/davidkim"}})
		before := mustCreate(t, repo, in)

		time.Sleep(5 * time.Millisecond)
		after, err := repo.Update(ctx, before.ID, domain.TalentPatch{Note: domain.Some(strPtr("x"))})
		require.NoError(t, err)

		require.NotNil(t, after.Note)
		assert.Equal(t, "x", *after.Note)
		assert.True(t, after.UpdatedAt.After(before.UpdatedAt))

		assert.Equal(t, before.ID, after.ID)
		assert.Equal(t, before.TalentID, after.TalentID)
		assert.Equal(t, before.FullName, after.FullName)
		assert.Equal(t, *before.Email, *after.Email)
		assert.Equal(t, before.Important, after.Important)
		assert.Equal(t, []domain.ExternalLink(before.ExternalLinks), []domain.ExternalLink(after.ExternalLinks))
		assert.WithinDuration(t, before.CreatedAt, after.CreatedAt, time.Second)
	})
}

func TestTalentRepository_UpdateClearsAndReplaces(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo TalentRepository) {
		ctx := context.Background()

		in := newTalent("talent-002", "Jane Smith")
		in.Email = strPtr("jane@example.com")
		in.Important = true
		in.ExternalLinks = domain.CloneLinks([]domain.ExternalLink{
			{Name: "LinkedIn", URL: "https://linkedin.com/in/janesmith"},
			{Name: "Portfolio", URL: "https://janesmith.dev"},
		})
		created := mustCreate(t, repo, in)

		patch := domain.TalentPatch{
			Email:         domain.Some[*string](nil),
			Important:     domain.Some(false),
			ExternalLinks: domain.Some([]domain.ExternalLink{{Name: "GitHub", URL: "https://github.com/jane"}}),
		}
		patch.Normalize()

		updated, err := repo.Update(ctx, created.ID, patch)
		require.NoError(t, err)
		assert.Nil(t, updated.Email)
		assert.False(t, updated.Important)
		assert.Equal(t, []domain.ExternalLink{{Name: "GitHub", URL: "https://github.com/jane"}}, []domain.ExternalLink(updated.ExternalLinks))

		reloaded, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, reloaded.Email)
		assert.Len(t, reloaded.ExternalLinks, 1)
	})
}

func TestTalentRepository_DeleteIsIdempotent(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo TalentRepository) {
		ctx := context.Background()
		created := mustCreate(t, repo, newTalent("talent-001", "John Doe"))

		ok, err := repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		_, err = repo.FindByID(ctx, created.ID)
		assert.ErrorIs(t, err, apperror.ErrNotFound)

		ok, err = repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestTalentRepository_Navigation(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo TalentRepository) {
		ctx := context.Background()
		abc := seedN(t, repo, 3)
		a, b, c := abc[0], abc[1], abc[2]

		prev, err := repo.Previous(ctx, b.ID)
		require.NoError(t, err)
		require.NotNil(t, prev)
		assert.Equal(t, a.ID, prev.ID)

		next, err := repo.Next(ctx, b.ID)
		require.NoError(t, err)
		require.NotNil(t, next)
		assert.Equal(t, c.ID, next.ID)

		prev, err = repo.Previous(ctx, a.ID)
		require.NoError(t, err)
		assert.Nil(t, prev)

		next, err = repo.Next(ctx, c.ID)
		require.NoError(t, err)
		assert.Nil(t, next)

		_, err = repo.Delete(ctx, b.ID)
		require.NoError(t, err)

		prev, err = repo.Previous(ctx, c.ID)
		require.NoError(t, err)
		require.NotNil(t, prev)
		assert.Equal(t, a.ID, prev.ID)

		next, err = repo.Next(ctx, a.ID)
		require.NoError(t, err)
		require.NotNil(t, next)
		assert.Equal(t, c.ID, next.ID)

		_, err = repo.Previous(ctx, b.ID)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
		_, err = repo.Next(ctx, b.ID)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestTalentRepository_Count(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo TalentRepository) {
		seedN(t, repo, 4)
		n, err := repo.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(4), n)
	})
}

func TestTalentRepository_ConcurrentUpdatesAreNotLost(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo TalentRepository) {
		ctx := context.Background()
		created := mustCreate(t, repo, newTalent("talent-001", "John Doe"))

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				var patch domain.TalentPatch
				if i%2 == 0 {
					patch.Note = domain.Some(strPtr(fmt.Sprintf("note %d", i)))
				} else {
					patch.Important = domain.Some(true)
				}
				_, err := repo.Update(ctx, created.ID, patch)
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		got, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, got.Important)
		assert.NotNil(t, got.Note)
	})
}

func TestMemoryTalentRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryTalentRepository()
	ctx := context.Background()
	in := newTalent("talent-001", "John Doe")
	in.ExternalLinks = domain.CloneLinks([]domain.ExternalLink{{Name: "GitHub", URL: "https://github.com/johndoe"}})
	created := mustCreate(t, repo, in)

	in.ExternalLinks[0].URL = "mutated"
	created.ExternalLinks[0].URL = "mutated"

	got, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/johndoe", got.ExternalLinks[0].URL)
}
