package services

import (
	"context"
	"io"

	"go.uber.org/zap"

	"backoffice/internal/adminapi"
	"backoffice/internal/dto"
	"backoffice/internal/entities"
	"backoffice/internal/repositories"
	"backoffice/pkg/eventbus"
)

const helpArticles = "help-center/articles"

type HelpCenterServiceInterface interface {
	FindArticle(ctx context.Context, id int64) (*entities.HelpArticle, error)
	CreateArticle(ctx context.Context, payload dto.CreateHelpArticleDTO) (*entities.HelpArticle, error)
	UpdateArticle(ctx context.Context, id int64, payload dto.UpdateHelpArticleDTO) (*entities.HelpArticle, error)
	DeleteArticle(ctx context.Context, id int64) error
	UploadImage(ctx context.Context, id int64, fileName string, file io.Reader, meta dto.ImageMetaDTO) (*entities.HelpArticle, error)
	Categories(ctx context.Context) ([]entities.HelpCategory, error)
}

type HelpCenterService struct {
	mutationService
}

func NewHelpCenterService(client *adminapi.Client, bus *eventbus.Bus, cache repositories.CacheRepositoryInterface, logger *zap.Logger) HelpCenterServiceInterface {
	return &HelpCenterService{mutationService: newMutationService(client, bus, cache, ScopeHelpCenter, logger)}
}

func (s *HelpCenterService) FindArticle(ctx context.Context, id int64) (*entities.HelpArticle, error) {
	return adminapi.Get[entities.HelpArticle](ctx, s.client, adminapi.Path(false, helpArticles, adminapi.ID(id)))
}

func (s *HelpCenterService) CreateArticle(ctx context.Context, payload dto.CreateHelpArticleDTO) (*entities.HelpArticle, error) {
	article, err := adminapi.Create[entities.HelpArticle](ctx, s.client, adminapi.Path(false, helpArticles), payload)
	if err != nil {
		return nil, err
	}
	s.published(ctx, "create", idPtr(article.ID), payload)
	return article, nil
}

func (s *HelpCenterService) UpdateArticle(ctx context.Context, id int64, payload dto.UpdateHelpArticleDTO) (*entities.HelpArticle, error) {
	body := payload.Payload()
	article, err := adminapi.Update[entities.HelpArticle](ctx, s.client, adminapi.Path(false, helpArticles, adminapi.ID(id)), body)
	if err != nil {
		return nil, err
	}
	s.published(ctx, "update", idPtr(id), body)
	return article, nil
}

func (s *HelpCenterService) DeleteArticle(ctx context.Context, id int64) error {
	if err := adminapi.Delete(ctx, s.client, adminapi.Path(false, helpArticles, adminapi.ID(id))); err != nil {
		return err
	}
	s.published(ctx, "delete", idPtr(id), nil)
	return nil
}

func (s *HelpCenterService) UploadImage(ctx context.Context, id int64, fileName string, file io.Reader, meta dto.ImageMetaDTO) (*entities.HelpArticle, error) {
	article, err := adminapi.Upload[entities.HelpArticle](ctx, s.client, adminapi.Path(false, helpArticles, adminapi.ID(id), "image"), fileName, file, meta)
	if err != nil {
		return nil, err
	}
	s.published(ctx, "upload_image", idPtr(id), map[string]string{"file": fileName})
	return article, nil
}

// Categories - справочник категорий для формы статьи.
func (s *HelpCenterService) Categories(ctx context.Context) ([]entities.HelpCategory, error) {
	return s.client.HelpCategories(ctx)
}
