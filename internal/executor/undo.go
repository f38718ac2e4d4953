package executor

import (
	"context"
	"fmt"

	"ai-filepilot-be/internal/repository/specification"
	"ai-filepilot-be/internal/repository/unitofwork"
	"ai-filepilot-be/pkg/opstore"

	"github.com/google/uuid"
)

// Undo handlers derive the inverse from the staged record itself: each
// FileItem carries its pre-execution path and name, so no extra state is
// written at execute time.

func (e *Executor) undoMove(ctx context.Context, uow unitofwork.UnitOfWork, op *opstore.StagedOperation) (*Result, error) {
	items := make([]ItemResult, 0, len(op.Operation.Targets))
	restored := 0
	for _, target := range op.Operation.Targets {
		if err := e.undoMoveOne(ctx, uow, op.UserId, target); err != nil {
			items = append(items, ItemResult{ItemId: target.Id, Name: target.Name, Status: ItemStatusFailed, Message: err.Error()})
			continue
		}
		restored++
		items = append(items, ItemResult{ItemId: target.Id, Name: target.Name, Status: ItemStatusSuccess})
	}

	return &Result{
		Message: fmt.Sprintf("moved %d of %d item(s) back", restored, len(op.Operation.Targets)),
		Results: items,
	}, nil
}

func (e *Executor) undoMoveOne(ctx context.Context, uow unitofwork.UnitOfWork, userId uint, target opstore.FileItem) error {
	id, err := uuid.Parse(target.Id)
	if err != nil {
		return fmt.Errorf("invalid item id %q", target.Id)
	}

	originalParent := parentDir(target.Path)
	parentFolder, err := e.ensureFolder(ctx, uow, userId, originalParent)
	if err != nil {
		return err
	}

	if target.Type == "folder" {
		folder, err := uow.FolderRepository().FindOne(ctx,
			specification.ByID{ID: id},
			specification.OwnedBy{UserID: userId},
		)
		if err != nil {
			return err
		}
		if folder == nil {
			return fmt.Errorf("folder not found")
		}
		currentPath := folder.Path
		folder.Path = target.Path
		folder.ParentId = nil
		if parentFolder != nil {
			pid := parentFolder.Id
			folder.ParentId = &pid
		}
		if err := uow.FolderRepository().Update(ctx, folder); err != nil {
			return err
		}
		if _, err := uow.FolderRepository().UpdatePathPrefix(ctx, userId, currentPath, target.Path); err != nil {
			return err
		}
		_, err = uow.DocumentRepository().UpdatePathPrefix(ctx, userId, currentPath, target.Path)
		return err
	}

	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("file not found")
	}
	doc.Path = target.Path
	doc.FolderId = nil
	if parentFolder != nil {
		fid := parentFolder.Id
		doc.FolderId = &fid
	}
	return uow.DocumentRepository().Update(ctx, doc)
}

func (e *Executor) undoCopy(ctx context.Context, uow unitofwork.UnitOfWork, op *opstore.StagedOperation) (*Result, error) {
	dest := op.Operation.Destination

	items := make([]ItemResult, 0, len(op.Operation.Targets))
	removed := 0
	for _, target := range op.Operation.Targets {
		copyPath := joinPath(dest, target.Name)
		if err := e.removeAtPath(ctx, uow, op.UserId, copyPath, target.Type); err != nil {
			items = append(items, ItemResult{ItemId: target.Id, Name: target.Name, Status: ItemStatusFailed, Message: err.Error()})
			continue
		}
		removed++
		items = append(items, ItemResult{ItemId: target.Id, Name: target.Name, Status: ItemStatusSuccess})
	}

	return &Result{
		Message: fmt.Sprintf("removed %d of %d copies", removed, len(op.Operation.Targets)),
		Results: items,
	}, nil
}

func (e *Executor) removeAtPath(ctx context.Context, uow unitofwork.UnitOfWork, userId uint, path, itemType string) error {
	if itemType == "folder" {
		folder, err := uow.FolderRepository().FindOne(ctx,
			specification.ByPath{Path: path},
			specification.OwnedBy{UserID: userId},
		)
		if err != nil {
			return err
		}
		if folder == nil {
			return fmt.Errorf("copy not found at %s", path)
		}
		if _, err := uow.DocumentChunkRepository().DeleteUnderPath(ctx, userId, folder.Path); err != nil {
			return err
		}
		if _, err := uow.DocumentRepository().DeleteUnderPath(ctx, userId, folder.Path); err != nil {
			return err
		}
		if _, err := uow.FolderRepository().DeleteUnderPath(ctx, userId, folder.Path); err != nil {
			return err
		}
		return uow.FolderRepository().Delete(ctx, folder.Id)
	}

	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByPath{Path: path},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("copy not found at %s", path)
	}
	if err := uow.DocumentChunkRepository().DeleteByDocumentId(ctx, doc.Id); err != nil {
		return err
	}
	return uow.DocumentRepository().Delete(ctx, doc.Id)
}

func (e *Executor) undoDelete(ctx context.Context, uow unitofwork.UnitOfWork, op *opstore.StagedOperation) (*Result, error) {
	items := make([]ItemResult, 0, len(op.Operation.Targets))
	restored := 0
	for _, target := range op.Operation.Targets {
		if err := e.undoDeleteOne(ctx, uow, op.UserId, target); err != nil {
			items = append(items, ItemResult{ItemId: target.Id, Name: target.Name, Status: ItemStatusFailed, Message: err.Error()})
			continue
		}
		restored++
		items = append(items, ItemResult{ItemId: target.Id, Name: target.Name, Status: ItemStatusSuccess})
	}

	return &Result{
		Message: fmt.Sprintf("restored %d of %d item(s)", restored, len(op.Operation.Targets)),
		Results: items,
	}, nil
}

func (e *Executor) undoDeleteOne(ctx context.Context, uow unitofwork.UnitOfWork, userId uint, target opstore.FileItem) error {
	id, err := uuid.Parse(target.Id)
	if err != nil {
		return fmt.Errorf("invalid item id %q", target.Id)
	}

	if target.Type == "folder" {
		if err := uow.FolderRepository().Restore(ctx, id); err != nil {
			return err
		}
		if _, err := uow.FolderRepository().RestoreUnderPath(ctx, userId, target.Path); err != nil {
			return err
		}
		if _, err := uow.DocumentRepository().RestoreUnderPath(ctx, userId, target.Path); err != nil {
			return err
		}
		_, err := uow.DocumentChunkRepository().RestoreUnderPath(ctx, userId, target.Path)
		return err
	}

	if err := uow.DocumentRepository().Restore(ctx, id); err != nil {
		return err
	}
	return uow.DocumentChunkRepository().RestoreByDocumentId(ctx, id)
}

func (e *Executor) undoRename(ctx context.Context, uow unitofwork.UnitOfWork, op *opstore.StagedOperation) (*Result, error) {
	if len(op.Operation.Targets) == 0 {
		return nil, fmt.Errorf("rename has no target")
	}

	// Each target keeps its own original name in the staged record.
	items := make([]ItemResult, 0, len(op.Operation.Targets))
	restored := 0
	for _, target := range op.Operation.Targets {
		if err := e.renameOne(ctx, uow, op.UserId, target, target.Name); err != nil {
			items = append(items, ItemResult{ItemId: target.Id, Name: target.Name, Status: ItemStatusFailed, Message: err.Error()})
			continue
		}
		restored++
		items = append(items, ItemResult{ItemId: target.Id, Name: target.Name, Status: ItemStatusSuccess})
	}

	return &Result{
		Message: fmt.Sprintf("restored %d of %d name(s)", restored, len(op.Operation.Targets)),
		Results: items,
	}, nil
}

func (e *Executor) undoCreateFolder(ctx context.Context, uow unitofwork.UnitOfWork, op *opstore.StagedOperation) (*Result, error) {
	parentPath := op.Operation.ParentPath
	if parentPath == "" {
		parentPath = "/"
	}
	path := joinPath(parentPath, op.Operation.FolderName)

	if err := e.removeAtPath(ctx, uow, op.UserId, path, "folder"); err != nil {
		return nil, err
	}
	return &Result{
		Message: fmt.Sprintf("removed folder %s", path),
	}, nil
}
