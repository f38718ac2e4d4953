package executor

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"ai-filepilot-be/internal/entity"
	"ai-filepilot-be/internal/repository/specification"
	"ai-filepilot-be/internal/repository/unitofwork"
	"ai-filepilot-be/pkg/intent"
	"ai-filepilot-be/pkg/llm"
	"ai-filepilot-be/pkg/opstore"

	"github.com/google/uuid"
)

func (e *Executor) executeMove(ctx context.Context, uow unitofwork.UnitOfWork, op *opstore.StagedOperation) (*Result, error) {
	dest := op.Operation.Destination
	destFolder, err := e.ensureFolder(ctx, uow, op.UserId, dest)
	if err != nil {
		return nil, fmt.Errorf("resolve destination %q: %w", dest, err)
	}

	items := make([]ItemResult, 0, len(op.Operation.Targets))
	moved := 0
	for _, target := range op.Operation.Targets {
		if err := e.moveOne(ctx, uow, op.UserId, target, dest, destFolder); err != nil {
			items = append(items, ItemResult{ItemId: target.Id, Name: target.Name, Status: ItemStatusFailed, Message: err.Error()})
			continue
		}
		moved++
		items = append(items, ItemResult{ItemId: target.Id, Name: target.Name, Status: ItemStatusSuccess})
	}

	return &Result{
		Message:       fmt.Sprintf("moved %d of %d item(s) to %s", moved, len(op.Operation.Targets), dest),
		UndoAvailable: moved > 0,
		UndoDeadline:  e.undoDeadline(op),
		Results:       items,
	}, nil
}

func (e *Executor) moveOne(ctx context.Context, uow unitofwork.UnitOfWork, userId uint, target opstore.FileItem, dest string, destFolder *entity.Folder) error {
	id, err := uuid.Parse(target.Id)
	if err != nil {
		return fmt.Errorf("invalid item id %q", target.Id)
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
		newPath := joinPath(dest, folder.Name)
		if newPath == folder.Path || strings.HasPrefix(newPath, folder.Path+"/") {
			return fmt.Errorf("cannot move a folder into itself")
		}

		oldPath := folder.Path
		folder.Path = newPath
		folder.ParentId = nil
		if destFolder != nil {
			pid := destFolder.Id
			folder.ParentId = &pid
		}
		if err := uow.FolderRepository().Update(ctx, folder); err != nil {
			return err
		}
		if _, err := uow.FolderRepository().UpdatePathPrefix(ctx, userId, oldPath, newPath); err != nil {
			return err
		}
		_, err = uow.DocumentRepository().UpdatePathPrefix(ctx, userId, oldPath, newPath)
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
	doc.Path = joinPath(dest, doc.Name)
	doc.FolderId = nil
	if destFolder != nil {
		fid := destFolder.Id
		doc.FolderId = &fid
	}
	return uow.DocumentRepository().Update(ctx, doc)
}

func (e *Executor) executeCopy(ctx context.Context, uow unitofwork.UnitOfWork, op *opstore.StagedOperation) (*Result, error) {
	dest := op.Operation.Destination
	destFolder, err := e.ensureFolder(ctx, uow, op.UserId, dest)
	if err != nil {
		return nil, fmt.Errorf("resolve destination %q: %w", dest, err)
	}

	items := make([]ItemResult, 0, len(op.Operation.Targets))
	copied := 0
	for _, target := range op.Operation.Targets {
		if err := e.copyOne(ctx, uow, op.UserId, target, dest, destFolder); err != nil {
			items = append(items, ItemResult{ItemId: target.Id, Name: target.Name, Status: ItemStatusFailed, Message: err.Error()})
			continue
		}
		copied++
		items = append(items, ItemResult{ItemId: target.Id, Name: target.Name, Status: ItemStatusSuccess})
	}

	return &Result{
		Message:       fmt.Sprintf("copied %d of %d item(s) to %s", copied, len(op.Operation.Targets), dest),
		UndoAvailable: copied > 0,
		UndoDeadline:  e.undoDeadline(op),
		Results:       items,
	}, nil
}

func (e *Executor) copyOne(ctx context.Context, uow unitofwork.UnitOfWork, userId uint, target opstore.FileItem, dest string, destFolder *entity.Folder) error {
	id, err := uuid.Parse(target.Id)
	if err != nil {
		return fmt.Errorf("invalid item id %q", target.Id)
	}

	if target.Type == "folder" {
		return e.copyFolderTree(ctx, uow, userId, id, dest, destFolder)
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
	return e.copyDocument(ctx, uow, doc, joinPath(dest, doc.Name), destFolder)
}

func (e *Executor) copyDocument(ctx context.Context, uow unitofwork.UnitOfWork, src *entity.Document, newPath string, folder *entity.Folder) error {
	dup := *src
	dup.Id = uuid.New()
	dup.Path = newPath
	dup.FolderId = nil
	if folder != nil {
		fid := folder.Id
		dup.FolderId = &fid
	}
	if err := uow.DocumentRepository().Create(ctx, &dup); err != nil {
		return err
	}
	return uow.DocumentChunkRepository().CloneByDocumentId(ctx, src.Id, dup.Id)
}

// copyFolderTree duplicates a folder and everything beneath it. Parents are
// created before children by walking folders in path order.
func (e *Executor) copyFolderTree(ctx context.Context, uow unitofwork.UnitOfWork, userId uint, srcId uuid.UUID, dest string, destFolder *entity.Folder) error {
	src, err := uow.FolderRepository().FindOne(ctx,
		specification.ByID{ID: srcId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if src == nil {
		return fmt.Errorf("folder not found")
	}

	newRootPath := joinPath(dest, src.Name)
	if newRootPath == src.Path || strings.HasPrefix(newRootPath, src.Path+"/") {
		return fmt.Errorf("cannot copy a folder into itself")
	}

	newRoot := &entity.Folder{
		Id:     uuid.New(),
		UserId: userId,
		Name:   src.Name,
		Path:   newRootPath,
	}
	if destFolder != nil {
		pid := destFolder.Id
		newRoot.ParentId = &pid
	}
	if err := uow.FolderRepository().Create(ctx, newRoot); err != nil {
		return err
	}

	idMap := map[uuid.UUID]uuid.UUID{src.Id: newRoot.Id}

	subFolders, err := uow.FolderRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.UnderPath{Prefix: src.Path},
	)
	if err != nil {
		return err
	}
	sort.Slice(subFolders, func(i, j int) bool { return subFolders[i].Path < subFolders[j].Path })
	for _, f := range subFolders {
		dup := &entity.Folder{
			Id:     uuid.New(),
			UserId: userId,
			Name:   f.Name,
			Path:   newRootPath + strings.TrimPrefix(f.Path, src.Path),
		}
		if f.ParentId != nil {
			if mapped, ok := idMap[*f.ParentId]; ok {
				dup.ParentId = &mapped
			}
		}
		if err := uow.FolderRepository().Create(ctx, dup); err != nil {
			return err
		}
		idMap[f.Id] = dup.Id
	}

	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.UnderPath{Prefix: src.Path},
	)
	if err != nil {
		return err
	}
	for _, d := range docs {
		newPath := newRootPath + strings.TrimPrefix(d.Path, src.Path)
		var folder *entity.Folder
		if d.FolderId != nil {
			if mapped, ok := idMap[*d.FolderId]; ok {
				folder = &entity.Folder{Id: mapped}
			}
		}
		if err := e.copyDocument(ctx, uow, d, newPath, folder); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) executeDelete(ctx context.Context, uow unitofwork.UnitOfWork, op *opstore.StagedOperation) (*Result, error) {
	items := make([]ItemResult, 0, len(op.Operation.Targets))
	deleted := 0
	for _, target := range op.Operation.Targets {
		if err := e.deleteOne(ctx, uow, op.UserId, target); err != nil {
			items = append(items, ItemResult{ItemId: target.Id, Name: target.Name, Status: ItemStatusFailed, Message: err.Error()})
			continue
		}
		deleted++
		items = append(items, ItemResult{ItemId: target.Id, Name: target.Name, Status: ItemStatusSuccess})
	}

	return &Result{
		Message:       fmt.Sprintf("deleted %d of %d item(s)", deleted, len(op.Operation.Targets)),
		UndoAvailable: deleted > 0,
		UndoDeadline:  e.undoDeadline(op),
		Results:       items,
	}, nil
}

func (e *Executor) deleteOne(ctx context.Context, uow unitofwork.UnitOfWork, userId uint, target opstore.FileItem) error {
	id, err := uuid.Parse(target.Id)
	if err != nil {
		return fmt.Errorf("invalid item id %q", target.Id)
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
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("file not found")
	}
	if err := uow.DocumentChunkRepository().DeleteByDocumentId(ctx, doc.Id); err != nil {
		return err
	}
	return uow.DocumentRepository().Delete(ctx, doc.Id)
}

func (e *Executor) executeRename(ctx context.Context, uow unitofwork.UnitOfWork, op *opstore.StagedOperation) (*Result, error) {
	if len(op.Operation.Targets) == 0 {
		return nil, fmt.Errorf("rename has no target")
	}
	newName := op.Operation.NewName

	// The new name applies to every selected target.
	items := make([]ItemResult, 0, len(op.Operation.Targets))
	renamed := 0
	for _, target := range op.Operation.Targets {
		if err := e.renameOne(ctx, uow, op.UserId, target, newName); err != nil {
			items = append(items, ItemResult{ItemId: target.Id, Name: target.Name, Status: ItemStatusFailed, Message: err.Error()})
			continue
		}
		renamed++
		items = append(items, ItemResult{ItemId: target.Id, Name: newName, Status: ItemStatusSuccess})
	}

	return &Result{
		Message:       fmt.Sprintf("renamed %d of %d item(s) to %q", renamed, len(op.Operation.Targets), newName),
		UndoAvailable: renamed > 0,
		UndoDeadline:  e.undoDeadline(op),
		Results:       items,
	}, nil
}

func (e *Executor) renameOne(ctx context.Context, uow unitofwork.UnitOfWork, userId uint, target opstore.FileItem, newName string) error {
	if newName == "" {
		return fmt.Errorf("new name is empty")
	}
	id, err := uuid.Parse(target.Id)
	if err != nil {
		return fmt.Errorf("invalid item id %q", target.Id)
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
		oldPath := folder.Path
		folder.Name = newName
		folder.Path = joinPath(parentDir(oldPath), newName)
		if err := uow.FolderRepository().Update(ctx, folder); err != nil {
			return err
		}
		if _, err := uow.FolderRepository().UpdatePathPrefix(ctx, userId, oldPath, folder.Path); err != nil {
			return err
		}
		_, err = uow.DocumentRepository().UpdatePathPrefix(ctx, userId, oldPath, folder.Path)
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
	doc.Name = newName
	doc.Path = joinPath(parentDir(doc.Path), newName)
	return uow.DocumentRepository().Update(ctx, doc)
}

func (e *Executor) executeCreateFolder(ctx context.Context, uow unitofwork.UnitOfWork, op *opstore.StagedOperation) (*Result, error) {
	name := op.Operation.FolderName
	parentPath := op.Operation.ParentPath
	if parentPath == "" {
		parentPath = "/"
	}
	newPath := joinPath(parentPath, name)

	existing, err := uow.FolderRepository().FindOne(ctx,
		specification.ByPath{Path: newPath},
		specification.OwnedBy{UserID: op.UserId},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &Result{
			Message: fmt.Sprintf("folder %s already exists", newPath),
			Results: []ItemResult{{ItemId: existing.Id.String(), Name: name, Status: ItemStatusFailed, Message: "already exists"}},
		}, nil
	}

	parent, err := e.ensureFolder(ctx, uow, op.UserId, parentPath)
	if err != nil {
		return nil, err
	}

	folder := &entity.Folder{
		Id:     uuid.New(),
		UserId: op.UserId,
		Name:   name,
		Path:   newPath,
	}
	if parent != nil {
		pid := parent.Id
		folder.ParentId = &pid
	}
	if err := uow.FolderRepository().Create(ctx, folder); err != nil {
		return nil, err
	}

	return &Result{
		Message:       fmt.Sprintf("created folder %s", newPath),
		UndoAvailable: true,
		UndoDeadline:  e.undoDeadline(op),
		Results:       []ItemResult{{ItemId: folder.Id.String(), Name: name, Status: ItemStatusSuccess}},
	}, nil
}

func (e *Executor) executeSearch(ctx context.Context, op *opstore.StagedOperation) (*Result, error) {
	results, err := e.retriever.Search(ctx, op.Operation.SearchTerm, op.UserId)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return &Result{
		Message:       fmt.Sprintf("found %d result(s)", len(results)),
		SearchResults: results,
	}, nil
}

const summarizeContentLimit = 24000

func (e *Executor) executeSummarize(ctx context.Context, op *opstore.StagedOperation) (*Result, error) {
	uow := e.factory.NewUnitOfWork(ctx)

	items := make([]ItemResult, 0, len(op.Operation.Targets))
	summaries := make([]Summary, 0, len(op.Operation.Targets))
	for _, target := range op.Operation.Targets {
		if target.Type == "folder" {
			items = append(items, ItemResult{ItemId: target.Id, Name: target.Name, Status: ItemStatusSkipped, Message: "folders cannot be summarized"})
			continue
		}
		id, err := uuid.Parse(target.Id)
		if err != nil {
			items = append(items, ItemResult{ItemId: target.Id, Name: target.Name, Status: ItemStatusFailed, Message: "invalid item id"})
			continue
		}
		doc, err := uow.DocumentRepository().FindOne(ctx,
			specification.ByID{ID: id},
			specification.OwnedBy{UserID: op.UserId},
		)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			items = append(items, ItemResult{ItemId: target.Id, Name: target.Name, Status: ItemStatusFailed, Message: "file not found"})
			continue
		}
		if strings.TrimSpace(doc.Content) == "" {
			items = append(items, ItemResult{ItemId: target.Id, Name: target.Name, Status: ItemStatusSkipped, Message: "file has no extractable text"})
			continue
		}

		content := doc.Content
		if runes := []rune(content); len(runes) > summarizeContentLimit {
			content = string(runes[:summarizeContentLimit])
		}
		summary, err := e.llm.Generate(ctx, intent.SummaryPrompt(doc.Name, content), llm.WithTemperature(0.3))
		if err != nil {
			items = append(items, ItemResult{ItemId: target.Id, Name: target.Name, Status: ItemStatusFailed, Message: "summarization failed"})
			continue
		}
		summaries = append(summaries, Summary{ItemId: target.Id, Name: doc.Name, Summary: strings.TrimSpace(summary)})
		items = append(items, ItemResult{ItemId: target.Id, Name: doc.Name, Status: ItemStatusSuccess})
	}

	return &Result{
		Message:   fmt.Sprintf("summarized %d of %d item(s)", len(summaries), len(op.Operation.Targets)),
		Results:   items,
		Summaries: summaries,
	}, nil
}
