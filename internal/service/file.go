package service

import (
	"context"
	"log/slog"

	"compendi/internal/domain/repositories"
	"compendi/internal/forms"
	"compendi/internal/media"
	"compendi/internal/models"
)

// FileService implements file content operations for the owning user.
type FileService struct {
	files    repositories.FileRepository
	sections repositories.SectionRepository
	images   repositories.ImageRepository
	authz    *OwnerAuthorizer
	uploader media.Uploader
	txm      repositories.TransactionManager
	logger   *slog.Logger
}

// NewFileService creates a new file service
func NewFileService(
	files repositories.FileRepository,
	sections repositories.SectionRepository,
	images repositories.ImageRepository,
	authz *OwnerAuthorizer,
	uploader media.Uploader,
	txm repositories.TransactionManager,
	logger *slog.Logger,
) *FileService {
	return &FileService{
		files:    files,
		sections: sections,
		images:   images,
		authz:    authz,
		uploader: uploader,
		txm:      txm,
		logger:   logger,
	}
}

// FileView is a file page's data: the file, its owning folder, and its
// sections and images.
type FileView struct {
	File     *models.File
	Folder   *models.Folder
	Sections []models.Section
	Images   []models.Image
}

// View loads a file with its sections and images, enforcing ownership.
func (s *FileService) View(ctx context.Context, fileID, userID string) (*FileView, error) {
	file, folder, _, err := s.authz.FileForUser(ctx, fileID, userID)
	if err != nil {
		return nil, err
	}

	sections, err := s.sections.ListByFile(ctx, file.ID)
	if err != nil {
		return nil, err
	}

	images, err := s.images.ListByFile(ctx, file.ID)
	if err != nil {
		return nil, err
	}

	return &FileView{
		File:     file,
		Folder:   folder,
		Sections: sections,
		Images:   images,
	}, nil
}

// UpdateMain applies a validated metadata form to an owned file.
func (s *FileService) UpdateMain(ctx context.Context, fileID, userID string, form forms.FileMainForm) (*models.File, error) {
	file, _, _, err := s.authz.FileForUser(ctx, fileID, userID)
	if err != nil {
		return nil, err
	}

	file.Name = form.Name
	file.SubName = form.SubName

	if err := s.files.Update(ctx, file); err != nil {
		return nil, err
	}

	s.logger.Info("file updated", "id", file.ID, "user_id", userID)

	return file, nil
}

// AddSection appends a new section with the submitted text after the file's
// current last section. Position assignment and insert run in one
// transaction so concurrent appends cannot collide.
func (s *FileService) AddSection(ctx context.Context, userID string, form forms.FileSectionForm) (*models.Section, error) {
	file, _, _, err := s.authz.FileForUser(ctx, form.FileID, userID)
	if err != nil {
		return nil, err
	}

	section := &models.Section{
		FileID: file.ID,
		Body:   form.Body,
	}

	err = s.txm.ExecTx(ctx, func(txCtx context.Context) error {
		position, err := s.sections.NextPosition(txCtx, file.ID)
		if err != nil {
			return err
		}
		section.Position = position
		return s.sections.Create(txCtx, section)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("section added",
		"id", section.ID,
		"file_id", file.ID,
		"position", section.Position,
		"user_id", userID,
	)

	return section, nil
}

// AddImage hands the submitted source URL to the asset host and records the
// returned reference. Only the reference is stored; the bytes stay with the
// host.
func (s *FileService) AddImage(ctx context.Context, fileID, userID string, form forms.FileImageForm) (*models.Image, error) {
	file, _, _, err := s.authz.FileForUser(ctx, fileID, userID)
	if err != nil {
		return nil, err
	}

	asset, err := s.uploader.Upload(ctx, form.SourceURL, "")
	if err != nil {
		return nil, err
	}

	image := &models.Image{
		FileID:   file.ID,
		PublicID: asset.PublicID,
		URL:      asset.URL,
	}
	if err := s.images.Create(ctx, image); err != nil {
		return nil, err
	}

	s.logger.Info("image attached",
		"id", image.ID,
		"file_id", file.ID,
		"public_id", image.PublicID,
		"user_id", userID,
	)

	return image, nil
}

// Delete removes an owned file; its sections and images cascade.
func (s *FileService) Delete(ctx context.Context, fileID, userID string) error {
	if _, _, _, err := s.authz.FileForUser(ctx, fileID, userID); err != nil {
		return err
	}

	if err := s.files.Delete(ctx, fileID); err != nil {
		return err
	}

	s.logger.Info("file deleted", "id", fileID, "user_id", userID)

	return nil
}
