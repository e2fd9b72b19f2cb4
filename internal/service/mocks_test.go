package service

import (
	"context"
	"io"
	"log/slog"

	"compendi/internal/domain"
	"compendi/internal/domain/repositories"
	"compendi/internal/media"
	"compendi/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockUserRepo backs auth tests. Nil function fields mean "not found".
type mockUserRepo struct {
	createFn        func(ctx context.Context, user *models.User) error
	getByIDFn       func(ctx context.Context, id string) (*models.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*models.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	user.ID = "new-user-id"
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, domain.ErrNotFound
}

type mockProjectRepo struct {
	createFn     func(ctx context.Context, project *models.Project) error
	getByIDFn    func(ctx context.Context, id string) (*models.Project, error)
	listByUserFn func(ctx context.Context, userID string) ([]models.Project, error)
	updateFn     func(ctx context.Context, project *models.Project) error
	deleteFn     func(ctx context.Context, id string) error
}

func (m *mockProjectRepo) Create(ctx context.Context, project *models.Project) error {
	if m.createFn != nil {
		return m.createFn(ctx, project)
	}
	project.ID = "new-project-id"
	return nil
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockProjectRepo) ListByUser(ctx context.Context, userID string) ([]models.Project, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return []models.Project{}, nil
}

func (m *mockProjectRepo) Update(ctx context.Context, project *models.Project) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, project)
	}
	return nil
}

func (m *mockProjectRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockFolderRepo struct {
	createFn       func(ctx context.Context, folder *models.Folder) error
	getByIDFn      func(ctx context.Context, id string) (*models.Folder, error)
	listChildrenFn func(ctx context.Context, projectID string, parentID *string) ([]models.Folder, error)
	deleteFn       func(ctx context.Context, id string) error
}

func (m *mockFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	if m.createFn != nil {
		return m.createFn(ctx, folder)
	}
	folder.ID = "new-folder-id"
	return nil
}

func (m *mockFolderRepo) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockFolderRepo) ListChildren(ctx context.Context, projectID string, parentID *string) ([]models.Folder, error) {
	if m.listChildrenFn != nil {
		return m.listChildrenFn(ctx, projectID, parentID)
	}
	return []models.Folder{}, nil
}

func (m *mockFolderRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockFileRepo struct {
	createFn       func(ctx context.Context, file *models.File) error
	getByIDFn      func(ctx context.Context, id string) (*models.File, error)
	listByFolderFn func(ctx context.Context, folderID string) ([]models.File, error)
	updateFn       func(ctx context.Context, file *models.File) error
	deleteFn       func(ctx context.Context, id string) error
}

func (m *mockFileRepo) Create(ctx context.Context, file *models.File) error {
	if m.createFn != nil {
		return m.createFn(ctx, file)
	}
	file.ID = "new-file-id"
	return nil
}

func (m *mockFileRepo) GetByID(ctx context.Context, id string) (*models.File, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockFileRepo) ListByFolder(ctx context.Context, folderID string) ([]models.File, error) {
	if m.listByFolderFn != nil {
		return m.listByFolderFn(ctx, folderID)
	}
	return []models.File{}, nil
}

func (m *mockFileRepo) Update(ctx context.Context, file *models.File) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, file)
	}
	return nil
}

func (m *mockFileRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockSectionRepo struct {
	createFn       func(ctx context.Context, section *models.Section) error
	getByIDFn      func(ctx context.Context, id string) (*models.Section, error)
	listByFileFn   func(ctx context.Context, fileID string) ([]models.Section, error)
	nextPositionFn func(ctx context.Context, fileID string) (int, error)
	deleteFn       func(ctx context.Context, id string) error
}

func (m *mockSectionRepo) Create(ctx context.Context, section *models.Section) error {
	if m.createFn != nil {
		return m.createFn(ctx, section)
	}
	section.ID = "new-section-id"
	return nil
}

func (m *mockSectionRepo) GetByID(ctx context.Context, id string) (*models.Section, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockSectionRepo) ListByFile(ctx context.Context, fileID string) ([]models.Section, error) {
	if m.listByFileFn != nil {
		return m.listByFileFn(ctx, fileID)
	}
	return []models.Section{}, nil
}

func (m *mockSectionRepo) NextPosition(ctx context.Context, fileID string) (int, error) {
	if m.nextPositionFn != nil {
		return m.nextPositionFn(ctx, fileID)
	}
	return 1, nil
}

func (m *mockSectionRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockImageRepo struct {
	createFn     func(ctx context.Context, image *models.Image) error
	getByIDFn    func(ctx context.Context, id string) (*models.Image, error)
	listByFileFn func(ctx context.Context, fileID string) ([]models.Image, error)
	deleteFn     func(ctx context.Context, id string) error
}

func (m *mockImageRepo) Create(ctx context.Context, image *models.Image) error {
	if m.createFn != nil {
		return m.createFn(ctx, image)
	}
	image.ID = "new-image-id"
	return nil
}

func (m *mockImageRepo) GetByID(ctx context.Context, id string) (*models.Image, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockImageRepo) ListByFile(ctx context.Context, fileID string) ([]models.Image, error) {
	if m.listByFileFn != nil {
		return m.listByFileFn(ctx, fileID)
	}
	return []models.Image{}, nil
}

func (m *mockImageRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockTxManager runs the function inline; transactional boundaries are the
// repository layer's concern, not the services'.
type mockTxManager struct {
	calls int
}

func (m *mockTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	m.calls++
	return fn(ctx)
}

// mockUploader records the last upload and returns a fixed asset.
type mockUploader struct {
	lastSourceURL string
	err           error
}

func (m *mockUploader) Upload(ctx context.Context, sourceURL, publicID string) (*media.Asset, error) {
	m.lastSourceURL = sourceURL
	if m.err != nil {
		return nil, m.err
	}
	return &media.Asset{
		PublicID: "uploaded-public-id",
		URL:      "https://res.example.com/uploaded-public-id",
	}, nil
}
