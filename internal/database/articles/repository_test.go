package articles

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kabarin/kabar/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB, func()) {
	dbPath := "./test_articles_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.User{}, &entities.Category{}, &entities.Article{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, db, cleanup
}

func seedCategory(t *testing.T, db *gorm.DB, name, slug string) *entities.Category {
	t.Helper()
	category := &entities.Category{Name: name, Slug: slug}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedArticle(t *testing.T, repo *Repository, categoryID uint, title string, publishedAt time.Time) *entities.Article {
	t.Helper()
	article := &entities.Article{
		Title:       title,
		Summary:     "summary of " + title,
		Content:     "<p>content</p>",
		CategoryID:  categoryID,
		AuthorID:    1,
		PublishedAt: publishedAt,
	}
	require.NoError(t, repo.Create(article))
	return article
}

func TestRepository_Create_DerivesSlug(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	category := seedCategory(t, db, "Politik", "politik")
	article := seedArticle(t, repo, category.ID, "DPR Resmi Sahkan RUU!", time.Now())

	assert.Equal(t, "dpr-resmi-sahkan-ruu", article.Slug)
}

func TestRepository_Create_DuplicateSlug(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	category := seedCategory(t, db, "Politik", "politik")
	seedArticle(t, repo, category.ID, "Same Title", time.Now())

	err := repo.Create(&entities.Article{
		Title:       "Same Title",
		CategoryID:  category.ID,
		PublishedAt: time.Now(),
	})
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestRepository_List_OrderAndPagination(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	category := seedCategory(t, db, "Politik", "politik")
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedArticle(t, repo, category.ID, fmt.Sprintf("Article %d", i), base.Add(time.Duration(i)*time.Hour))
	}

	articles, total, err := repo.List(ListParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, articles, 2)
	// Newest first
	assert.Equal(t, "Article 4", articles[0].Title)
	assert.Equal(t, "Article 3", articles[1].Title)

	articles, _, err = repo.List(ListParams{Page: 3, Limit: 2})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "Article 0", articles[0].Title)
}

func TestRepository_List_FilterByCategory(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	politik := seedCategory(t, db, "Politik", "politik")
	sport := seedCategory(t, db, "Sport", "sport")
	seedArticle(t, repo, politik.ID, "Political News", time.Now())
	seedArticle(t, repo, sport.ID, "Sport News", time.Now())

	articles, total, err := repo.List(ListParams{CategorySlug: "sport"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, articles, 1)
	assert.Equal(t, "Sport News", articles[0].Title)
	assert.Equal(t, "Sport", articles[0].Category.Name)
}

func TestRepository_List_Search(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	category := seedCategory(t, db, "Teknologi", "teknologi")
	seedArticle(t, repo, category.ID, "Quantum Breakthrough", time.Now())
	seedArticle(t, repo, category.ID, "Ordinary Update", time.Now())

	articles, total, err := repo.List(ListParams{Search: "quantum"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, articles, 1)
	assert.Equal(t, "Quantum Breakthrough", articles[0].Title)
}

func TestRepository_GetBySlug(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	category := seedCategory(t, db, "Politik", "politik")
	created := seedArticle(t, repo, category.ID, "Some Title", time.Now())

	article, err := repo.GetBySlug(created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, article.ID)
	assert.Equal(t, "Politik", article.Category.Name)

	_, err = repo.GetBySlug("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_Counters(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	category := seedCategory(t, db, "Politik", "politik")
	created := seedArticle(t, repo, category.ID, "Counted", time.Now())

	require.NoError(t, repo.IncrementViewCount(created.Slug))
	require.NoError(t, repo.IncrementViewCount(created.Slug))

	shares, err := repo.IncrementShareCount(created.Slug)
	require.NoError(t, err)
	assert.Equal(t, int64(1), shares)

	article, err := repo.GetBySlug(created.Slug)
	require.NoError(t, err)
	assert.Equal(t, int64(2), article.ViewCount)
	assert.Equal(t, int64(1), article.ShareCount)

	_, err = repo.IncrementShareCount("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_UpdateAndDelete(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	category := seedCategory(t, db, "Politik", "politik")
	created := seedArticle(t, repo, category.ID, "Before", time.Now())

	updated, err := repo.Update(created.Slug, map[string]any{"title": "After"})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Title)

	require.NoError(t, repo.Delete(created.Slug))
	_, err = repo.GetBySlug(created.Slug)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(created.Slug), ErrNotFound)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Spaces   everywhere  ", "spaces-everywhere"},
		{"Sudah -- punctuated! (yes)", "sudah-punctuated-yes"},
		{"UPPER case 123", "upper-case-123"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}
