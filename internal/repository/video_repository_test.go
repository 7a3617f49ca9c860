package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/creatorhub/creator-review-api/internal/models"
)

func setupVideoRepo(t *testing.T) (VideoRepository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Video{}, &models.InsightImage{}, &models.VideoComment{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewVideoRepository(db), db
}

func seedVideo(t *testing.T, db *gorm.DB, id, creator, coordinator string, status models.VideoStatus, createdAt time.Time) {
	t.Helper()
	video := &models.Video{
		ID:                  id,
		TaskID:              1,
		CreatorUsername:     creator,
		CoordinatorUsername: coordinator,
		FileKey:             "videos/" + creator + "/" + id + ".mp4",
		FileURL:             "/media/videos/" + creator + "/" + id + ".mp4",
		Status:              status,
	}
	require.NoError(t, db.Create(video).Error)
	// CreatedAt is set by the create hook; pin it explicitly for ordering.
	require.NoError(t, db.Model(video).UpdateColumn("created_at", createdAt).Error)
}

func TestVideoRepository_ListNewestFirst(t *testing.T) {
	repo, db := setupVideoRepo(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	seedVideo(t, db, "vid-a", "alice", "coord", models.VideoStatusPending, base)
	seedVideo(t, db, "vid-b", "bob", "coord", models.VideoStatusPending, base.Add(time.Hour))
	seedVideo(t, db, "vid-c", "alice", "coord", models.VideoStatusReview, base.Add(2*time.Hour))

	videos, total, err := repo.List(VideoFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Equal(t, []string{"vid-c", "vid-b", "vid-a"}, videoIDs(videos))
}

func TestVideoRepository_FilteredListIsSubsequence(t *testing.T) {
	repo, db := setupVideoRepo(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 6; i++ {
		creator := "alice"
		if i%2 == 0 {
			creator = "bob"
		}
		seedVideo(t, db, fmt.Sprintf("vid-%d", i), creator, "coord",
			models.VideoStatusPending, base.Add(time.Duration(i)*time.Hour))
	}

	all, _, err := repo.List(VideoFilter{})
	require.NoError(t, err)

	filtered, total, err := repo.List(VideoFilter{Creator: "alice"})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)

	// The filtered order must be a subsequence of the unfiltered order.
	pos := 0
	for _, video := range filtered {
		found := false
		for ; pos < len(all); pos++ {
			if all[pos].ID == video.ID {
				found = true
				pos++
				break
			}
		}
		require.True(t, found, "video %s out of order", video.ID)
	}
}

func TestVideoRepository_ListDateWindow(t *testing.T) {
	repo, db := setupVideoRepo(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	seedVideo(t, db, "vid-early", "alice", "coord", models.VideoStatusPending, base)
	seedVideo(t, db, "vid-mid", "alice", "coord", models.VideoStatusPending, base.AddDate(0, 0, 5))
	seedVideo(t, db, "vid-late", "alice", "coord", models.VideoStatusPending, base.AddDate(0, 0, 10))

	from := base.AddDate(0, 0, 1)
	to := base.AddDate(0, 0, 10)
	videos, total, err := repo.List(VideoFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, []string{"vid-mid"}, videoIDs(videos))
}

func TestVideoRepository_ListPaginationWindows(t *testing.T) {
	repo, db := setupVideoRepo(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		seedVideo(t, db, fmt.Sprintf("vid-%d", i), "alice", "coord",
			models.VideoStatusPending, base.Add(time.Duration(i)*time.Hour))
	}

	page1, total, err := repo.List(VideoFilter{Page: 1, PageSize: 3})
	require.NoError(t, err)
	require.Equal(t, int64(7), total)
	require.Len(t, page1, 3)

	page3, _, err := repo.List(VideoFilter{Page: 3, PageSize: 3})
	require.NoError(t, err)
	require.Len(t, page3, 1)

	// Pages tile the full ordering without overlap.
	page2, _, err := repo.List(VideoFilter{Page: 2, PageSize: 3})
	require.NoError(t, err)
	seen := map[string]bool{}
	for _, video := range append(append(page1, page2...), page3...) {
		require.False(t, seen[video.ID], "video %s appeared twice", video.ID)
		seen[video.ID] = true
	}
	require.Len(t, seen, 7)
}

func TestVideoRepository_CountInsightsByKind(t *testing.T) {
	repo, db := setupVideoRepo(t)
	seedVideo(t, db, "vid-a", "alice", "coord", models.VideoStatusApproved, time.Now())

	for i := 0; i < 2; i++ {
		require.NoError(t, repo.AddInsight(&models.InsightImage{
			VideoID:    "vid-a",
			Kind:       models.InsightKindInsight,
			FileKey:    fmt.Sprintf("insights/vid-a/%d.png", i),
			FileURL:    fmt.Sprintf("/media/insights/vid-a/%d.png", i),
			UploadedBy: "alice",
		}))
	}
	require.NoError(t, repo.AddInsight(&models.InsightImage{
		VideoID:    "vid-a",
		Kind:       models.InsightKindUTM,
		FileKey:    "utms/vid-a/0.png",
		FileURL:    "/media/utms/vid-a/0.png",
		UploadedBy: "alice",
	}))

	count, err := repo.CountInsights("vid-a", models.InsightKindInsight)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	count, err = repo.CountInsights("vid-a", models.InsightKindUTM)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestVideoRepository_StatusUpdateGuardsCurrentStatus(t *testing.T) {
	repo, db := setupVideoRepo(t)
	seedVideo(t, db, "vid-a", "alice", "coord", models.VideoStatusReview, time.Now())

	rows, err := repo.UpdateStatus("vid-a", models.VideoStatusReview, models.VideoStatusApproved)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	// A competing transition validated against the old status touches nothing.
	rows, err = repo.UpdateStatus("vid-a", models.VideoStatusReview, models.VideoStatusRejected)
	require.NoError(t, err)
	require.Equal(t, int64(0), rows)

	video, err := repo.FindByID("vid-a")
	require.NoError(t, err)
	require.Equal(t, models.VideoStatusApproved, video.Status)
}

func TestVideoRepository_UpdateFieldsLeavesOtherColumnsAlone(t *testing.T) {
	repo, db := setupVideoRepo(t)
	seedVideo(t, db, "vid-a", "alice", "coord", models.VideoStatusApproved, time.Now())

	err := repo.UpdateFields("vid-a", map[string]interface{}{
		"social_media_url": "https://youtu.be/xyz",
	})
	require.NoError(t, err)

	// A later score update names only its own columns.
	scoredAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	err = repo.UpdateFields("vid-a", map[string]interface{}{
		"score_consistency": 4,
		"score_creativity":  5,
		"score_content":     3,
		"scored_by":         "client",
		"scored_at":         scoredAt,
	})
	require.NoError(t, err)

	video, err := repo.FindByID("vid-a")
	require.NoError(t, err)
	require.Equal(t, models.VideoStatusApproved, video.Status)
	require.Equal(t, "https://youtu.be/xyz", video.SocialMediaURL)
	require.Equal(t, 4, video.ScoreConsistency)
	require.Equal(t, "client", video.ScoredBy)
	require.NotNil(t, video.ScoredAt)
}

func TestVideoRepository_LeaderboardQuery(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT creator_username, SUM\\(score_consistency \\+ score_creativity \\+ score_content\\) AS total_score, COUNT\\(\\*\\) AS scored_videos").
		WillReturnRows(sqlmock.NewRows([]string{"creator_username", "total_score", "scored_videos"}).
			AddRow("bob", 33, 2).
			AddRow("alice", 15, 1))

	repo := NewVideoRepository(db)
	rows, err := repo.Leaderboard(10)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, rows, 2)
	require.Equal(t, LeaderboardRow{CreatorUsername: "bob", TotalScore: 33, ScoredVideos: 2}, rows[0])
	require.Equal(t, LeaderboardRow{CreatorUsername: "alice", TotalScore: 15, ScoredVideos: 1}, rows[1])
}

func videoIDs(videos []models.Video) []string {
	ids := make([]string, len(videos))
	for i, video := range videos {
		ids[i] = video.ID
	}
	return ids
}
