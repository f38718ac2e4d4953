package service

import (
	"context"
	"encoding/json"

	"ai-filepilot-be/internal/dto"
	"ai-filepilot-be/internal/entity"
	"ai-filepilot-be/internal/pkg/serverutils"
	"ai-filepilot-be/internal/repository/specification"
	"ai-filepilot-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Create(ctx context.Context, userId uint, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error)
	Show(ctx context.Context, userId uint, id uuid.UUID) (*dto.ShowDocumentResponse, error)
	GetAll(ctx context.Context, userId uint) ([]*dto.ListDocumentResponse, error)
	GetFolders(ctx context.Context, userId uint) ([]*dto.ListFolderResponse, error)
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *documentService) Create(ctx context.Context, userId uint, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	parentPath := "/"
	if req.FolderId != nil {
		folder, err := uow.FolderRepository().FindOne(ctx,
			specification.ByID{ID: *req.FolderId},
			specification.OwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if folder == nil {
			return nil, serverutils.NotFound("folder not found")
		}
		parentPath = folder.Path
	}

	path := parentPath + "/" + req.Name
	if parentPath == "/" {
		path = "/" + req.Name
	}

	doc := &entity.Document{
		Id:       uuid.New(),
		UserId:   userId,
		FolderId: req.FolderId,
		Name:     req.Name,
		Path:     path,
		Size:     int64(len(req.Content)),
		MimeType: req.MimeType,
		Content:  req.Content,
	}
	if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
		return nil, err
	}

	// Embedding happens off the request path.
	payload, err := json.Marshal(dto.PublishEmbedDocumentMessage{DocumentId: doc.Id})
	if err == nil {
		_ = s.publisherService.Publish(ctx, payload)
	}

	return &dto.CreateDocumentResponse{Id: doc.Id, Path: doc.Path}, nil
}

func (s *documentService) Show(ctx context.Context, userId uint, id uuid.UUID) (*dto.ShowDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, serverutils.NotFound("document not found")
	}

	return &dto.ShowDocumentResponse{
		Id:        doc.Id,
		Name:      doc.Name,
		Path:      doc.Path,
		FolderId:  doc.FolderId,
		Size:      doc.Size,
		MimeType:  doc.MimeType,
		Content:   doc.Content,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func (s *documentService) GetAll(ctx context.Context, userId uint) ([]*dto.ListDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "path"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ListDocumentResponse, 0, len(docs))
	for _, d := range docs {
		result = append(result, &dto.ListDocumentResponse{
			Id:        d.Id,
			Name:      d.Name,
			Path:      d.Path,
			FolderId:  d.FolderId,
			Size:      d.Size,
			MimeType:  d.MimeType,
			CreatedAt: d.CreatedAt,
		})
	}
	return result, nil
}

func (s *documentService) GetFolders(ctx context.Context, userId uint) ([]*dto.ListFolderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	folders, err := uow.FolderRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "path"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ListFolderResponse, 0, len(folders))
	for _, f := range folders {
		result = append(result, &dto.ListFolderResponse{
			Id:        f.Id,
			Name:      f.Name,
			Path:      f.Path,
			ParentId:  f.ParentId,
			CreatedAt: f.CreatedAt,
		})
	}
	return result, nil
}
