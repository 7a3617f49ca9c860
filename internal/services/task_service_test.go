package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/creatorhub/creator-review-api/internal/models"
	"github.com/creatorhub/creator-review-api/internal/repository"
)

func setupTaskService(t *testing.T) (*TaskService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Task{}, &models.Video{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewTaskService(repository.NewTaskRepository(db)), db
}

func TestTaskService_CreateTaskValidation(t *testing.T) {
	svc, _ := setupTaskService(t)
	now := time.Now()

	cases := []struct {
		name  string
		input CreateTaskInput
		want  error
	}{
		{
			name: "missing title",
			input: CreateTaskInput{
				TotalVideos: 3,
				StartDate:   now,
				EndDate:     now.Add(time.Hour),
			},
			want: ErrTitleRequired,
		},
		{
			name: "zero total videos",
			input: CreateTaskInput{
				Title:     "Campaign",
				StartDate: now,
				EndDate:   now.Add(time.Hour),
			},
			want: ErrInvalidTotalVideos,
		},
		{
			name: "end before start",
			input: CreateTaskInput{
				Title:       "Campaign",
				TotalVideos: 3,
				StartDate:   now,
				EndDate:     now.Add(-time.Hour),
			},
			want: ErrInvalidDateRange,
		},
		{
			name: "unknown creator type",
			input: CreateTaskInput{
				Title:       "Campaign",
				TotalVideos: 3,
				StartDate:   now,
				EndDate:     now.Add(time.Hour),
				CreatorType: "VIP",
			},
			want: ErrInvalidCreatorType,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateTask(tc.input)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestTaskService_CreateTaskDefaultsToAllCreators(t *testing.T) {
	svc, _ := setupTaskService(t)
	now := time.Now()

	task, err := svc.CreateTask(CreateTaskInput{
		Title:       "Campaign",
		TotalVideos: 3,
		StartDate:   now,
		EndDate:     now.Add(time.Hour),
		CreatedBy:   "admin",
	})
	require.NoError(t, err)
	require.Equal(t, models.CreatorTypeAll, task.CreatorType)
}

func TestTaskService_DerivedStatus(t *testing.T) {
	svc, db := setupTaskService(t)
	now := time.Now()

	upcoming, err := svc.CreateTask(CreateTaskInput{
		Title:       "Upcoming",
		TotalVideos: 2,
		StartDate:   now.Add(24 * time.Hour),
		EndDate:     now.Add(48 * time.Hour),
		CreatedBy:   "admin",
	})
	require.NoError(t, err)

	running, err := svc.CreateTask(CreateTaskInput{
		Title:       "Running",
		TotalVideos: 2,
		StartDate:   now.Add(-24 * time.Hour),
		EndDate:     now.Add(24 * time.Hour),
		CreatedBy:   "admin",
	})
	require.NoError(t, err)

	expired, err := svc.CreateTask(CreateTaskInput{
		Title:       "Expired",
		TotalVideos: 2,
		StartDate:   now.Add(-48 * time.Hour),
		EndDate:     now.Add(-24 * time.Hour),
		CreatedBy:   "admin",
	})
	require.NoError(t, err)

	filled, err := svc.CreateTask(CreateTaskInput{
		Title:       "Filled",
		TotalVideos: 1,
		StartDate:   now.Add(-48 * time.Hour),
		EndDate:     now.Add(-24 * time.Hour),
		CreatedBy:   "admin",
	})
	require.NoError(t, err)

	// A non-rejected upload fills the quota; completion wins over overdue.
	require.NoError(t, db.Create(&models.Video{
		ID:              "vid-1",
		TaskID:          filled.ID,
		CreatorUsername: "alice",
		FileKey:         "k",
		FileURL:         "u",
		Status:          models.VideoStatusApproved,
	}).Error)

	for _, tc := range []struct {
		id   uint64
		want models.TaskStatus
	}{
		{upcoming.ID, models.TaskStatusPending},
		{running.ID, models.TaskStatusOngoing},
		{expired.ID, models.TaskStatusOverdue},
		{filled.ID, models.TaskStatusCompleted},
	} {
		got, err := svc.GetTask(tc.id)
		require.NoError(t, err)
		require.Equal(t, tc.want, got.Status, got.Title)
	}
}

func TestTaskService_RejectedUploadsDoNotCount(t *testing.T) {
	svc, db := setupTaskService(t)
	now := time.Now()

	task, err := svc.CreateTask(CreateTaskInput{
		Title:       "Campaign",
		TotalVideos: 1,
		StartDate:   now.Add(-time.Hour),
		EndDate:     now.Add(time.Hour),
		CreatedBy:   "admin",
	})
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Video{
		ID:              "vid-rejected",
		TaskID:          task.ID,
		CreatorUsername: "alice",
		FileKey:         "k",
		FileURL:         "u",
		Status:          models.VideoStatusRejected,
	}).Error)

	got, err := svc.GetTask(task.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.UploadedVideos)
	require.Equal(t, models.TaskStatusOngoing, got.Status)
}

func TestTaskService_ListFilterByDerivedStatus(t *testing.T) {
	svc, _ := setupTaskService(t)
	now := time.Now()

	for _, spec := range []struct {
		title string
		start time.Duration
		end   time.Duration
	}{
		{"Running A", -time.Hour, time.Hour},
		{"Running B", -2 * time.Hour, 2 * time.Hour},
		{"Expired", -48 * time.Hour, -24 * time.Hour},
	} {
		_, err := svc.CreateTask(CreateTaskInput{
			Title:       spec.title,
			TotalVideos: 3,
			StartDate:   now.Add(spec.start),
			EndDate:     now.Add(spec.end),
			CreatedBy:   "admin",
		})
		require.NoError(t, err)
	}

	status := models.TaskStatusOngoing
	tasks, total, err := svc.ListTasks(ListTasksInput{Status: &status})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		require.Equal(t, models.TaskStatusOngoing, task.Status)
	}

	status = models.TaskStatusOverdue
	tasks, total, err = svc.ListTasks(ListTasksInput{Status: &status})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, tasks, 1)
	require.Equal(t, "Expired", tasks[0].Title)
}

func TestTaskService_ListFilterByCreatorType(t *testing.T) {
	svc, _ := setupTaskService(t)
	now := time.Now()

	for _, creatorType := range []models.CreatorType{
		models.CreatorTypeCore,
		models.CreatorTypePremium,
		models.CreatorTypeAll,
	} {
		_, err := svc.CreateTask(CreateTaskInput{
			Title:       string(creatorType) + " task",
			TotalVideos: 3,
			StartDate:   now.Add(-time.Hour),
			EndDate:     now.Add(time.Hour),
			CreatorType: creatorType,
			CreatedBy:   "admin",
		})
		require.NoError(t, err)
	}

	// A Core creator sees Core tasks plus tasks open to all.
	coreType := models.CreatorTypeCore
	tasks, total, err := svc.ListTasks(ListTasksInput{CreatorType: &coreType})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		require.NotEqual(t, models.CreatorTypePremium, task.CreatorType)
	}
}

func TestTaskService_UpdateTaskRevalidatesDates(t *testing.T) {
	svc, _ := setupTaskService(t)
	now := time.Now()

	task, err := svc.CreateTask(CreateTaskInput{
		Title:       "Campaign",
		TotalVideos: 3,
		StartDate:   now,
		EndDate:     now.Add(time.Hour),
		CreatedBy:   "admin",
	})
	require.NoError(t, err)

	badEnd := now.Add(-time.Hour)
	_, err = svc.UpdateTask(task.ID, UpdateTaskInput{EndDate: &badEnd})
	require.ErrorIs(t, err, ErrInvalidDateRange)

	newTitle := "Renamed"
	updated, err := svc.UpdateTask(task.ID, UpdateTaskInput{Title: &newTitle})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Title)
}

func TestTaskService_DeleteTask(t *testing.T) {
	svc, _ := setupTaskService(t)
	now := time.Now()

	task, err := svc.CreateTask(CreateTaskInput{
		Title:       "Campaign",
		TotalVideos: 3,
		StartDate:   now,
		EndDate:     now.Add(time.Hour),
		CreatedBy:   "admin",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(task.ID))
	require.ErrorIs(t, svc.DeleteTask(task.ID), ErrTaskNotFound)
}
