package intent

import (
	"fmt"
	"strings"

	"ai-filepilot-be/internal/pkg/language"
	"ai-filepilot-be/pkg/opstore"
)

// BuildPreview renders the confirmation text for a staged operation.
// Wording rules:
//   - delete never mentions a destination and always warns about permanence
//   - rename mentions only the original and the new name
//   - move/copy/create_folder mention the destination or parent, plus a note
//     when a new folder will be created
func BuildPreview(op *opstore.Operation, octx *opstore.OperationContext, lang language.Lang, newFolder bool) opstore.Preview {
	if lang == language.English {
		return buildEnglish(op, octx, newFolder)
	}
	return buildKorean(op, octx, newFolder)
}

func countTargets(targets []opstore.FileItem) (total, files, folders int) {
	for _, t := range targets {
		if t.Type == "folder" {
			folders++
		} else {
			files++
		}
	}
	return len(targets), files, folders
}

func targetNames(targets []opstore.FileItem, max int) string {
	names := make([]string, 0, len(targets))
	for i, t := range targets {
		if i >= max {
			names = append(names, "...")
			break
		}
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}

func buildKorean(op *opstore.Operation, _ *opstore.OperationContext, newFolder bool) opstore.Preview {
	switch op.Type {
	case opstore.KindDelete:
		total, files, folders := countTargets(op.Targets)
		desc := fmt.Sprintf("%d개 항목 (파일 %d개, 폴더 %d개)을 삭제합니다.", total, files, folders)
		return opstore.Preview{
			Description: desc,
			Warnings:    []string{"삭제된 항목은 복구할 수 없습니다. 이 작업은 영구적입니다."},
		}

	case opstore.KindMove:
		desc := fmt.Sprintf("%d개 항목을 '%s'(으)로 이동합니다.", len(op.Targets), op.Destination)
		if newFolder {
			desc += " 새 폴더가 생성됩니다."
		}
		return opstore.Preview{Description: desc, Warnings: []string{}}

	case opstore.KindCopy:
		desc := fmt.Sprintf("%d개 항목을 '%s'(으)로 복사합니다.", len(op.Targets), op.Destination)
		if newFolder {
			desc += " 새 폴더가 생성됩니다."
		}
		return opstore.Preview{Description: desc, Warnings: []string{}}

	case opstore.KindRename:
		original := ""
		if len(op.Targets) > 0 {
			original = op.Targets[0].Name
		}
		desc := fmt.Sprintf("'%s'의 이름을 '%s'(으)로 변경합니다.", original, op.NewName)
		if len(op.Targets) > 1 {
			desc = fmt.Sprintf("%d개 항목의 이름을 '%s'(으)로 변경합니다.", len(op.Targets), op.NewName)
		}
		return opstore.Preview{Description: desc, Warnings: []string{}}

	case opstore.KindCreateFolder:
		desc := fmt.Sprintf("'%s'에 '%s' 폴더를 생성합니다.", op.ParentPath, op.FolderName)
		if newFolder {
			desc += " 상위 폴더도 함께 생성됩니다."
		}
		return opstore.Preview{Description: desc, Warnings: []string{}}

	case opstore.KindSearch:
		return opstore.Preview{
			Description: fmt.Sprintf("'%s'을(를) 검색합니다.", op.SearchTerm),
			Warnings:    []string{},
		}

	case opstore.KindSummarize:
		return opstore.Preview{
			Description: fmt.Sprintf("%d개 문서를 요약합니다: %s", len(op.Targets), targetNames(op.Targets, 3)),
			Warnings:    []string{},
		}

	default:
		return opstore.Preview{
			Description: "요청을 처리할 수 없습니다.",
			Warnings:    []string{},
		}
	}
}

func buildEnglish(op *opstore.Operation, _ *opstore.OperationContext, newFolder bool) opstore.Preview {
	switch op.Type {
	case opstore.KindDelete:
		total, files, folders := countTargets(op.Targets)
		desc := fmt.Sprintf("Delete %d items (%d files, %d folders).", total, files, folders)
		return opstore.Preview{
			Description: desc,
			Warnings:    []string{"Deleted items cannot be recovered. This action is permanent."},
		}

	case opstore.KindMove:
		desc := fmt.Sprintf("Move %d items to '%s'.", len(op.Targets), op.Destination)
		if newFolder {
			desc += " A new folder will be created."
		}
		return opstore.Preview{Description: desc, Warnings: []string{}}

	case opstore.KindCopy:
		desc := fmt.Sprintf("Copy %d items to '%s'.", len(op.Targets), op.Destination)
		if newFolder {
			desc += " A new folder will be created."
		}
		return opstore.Preview{Description: desc, Warnings: []string{}}

	case opstore.KindRename:
		original := ""
		if len(op.Targets) > 0 {
			original = op.Targets[0].Name
		}
		desc := fmt.Sprintf("Rename '%s' to '%s'.", original, op.NewName)
		if len(op.Targets) > 1 {
			desc = fmt.Sprintf("Rename %d items to '%s'.", len(op.Targets), op.NewName)
		}
		return opstore.Preview{Description: desc, Warnings: []string{}}

	case opstore.KindCreateFolder:
		desc := fmt.Sprintf("Create folder '%s' in '%s'.", op.FolderName, op.ParentPath)
		if newFolder {
			desc += " The parent folder will be created as well."
		}
		return opstore.Preview{Description: desc, Warnings: []string{}}

	case opstore.KindSearch:
		return opstore.Preview{
			Description: fmt.Sprintf("Search for '%s'.", op.SearchTerm),
			Warnings:    []string{},
		}

	case opstore.KindSummarize:
		return opstore.Preview{
			Description: fmt.Sprintf("Summarize %d documents: %s", len(op.Targets), targetNames(op.Targets, 3)),
			Warnings:    []string{},
		}

	default:
		return opstore.Preview{
			Description: "Unable to process the request.",
			Warnings:    []string{},
		}
	}
}
