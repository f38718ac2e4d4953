package main

import (
	"context"
	"log"
	"os"

	"ai-filepilot-be/internal/entity"
	"ai-filepilot-be/internal/repository/specification"
	"ai-filepilot-be/internal/repository/unitofwork"
	"ai-filepilot-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Seeds a demo user with a small folder tree so the intent pipeline has
// something to operate on in a fresh environment.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewUnitOfWork(db)

	user, err := uow.UserRepository().FindOne(ctx, specification.Filter("email", "demo@filepilot.local"))
	if err != nil {
		log.Fatalf("Error: failed to look up demo user: %v", err)
	}
	if user == nil {
		user = &entity.User{Email: "demo@filepilot.local", FullName: "Demo User"}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			log.Fatalf("Error: failed to create demo user: %v", err)
		}
		log.Printf("Created demo user %d", user.Id)
	}

	folders := []struct {
		name string
		path string
	}{
		{"work", "/work"},
		{"marketing", "/work/marketing"},
		{"personal", "/personal"},
	}

	created := map[string]uuid.UUID{}
	for _, f := range folders {
		existing, err := uow.FolderRepository().FindOne(ctx,
			specification.ByPath{Path: f.path},
			specification.OwnedBy{UserID: user.Id},
		)
		if err != nil {
			log.Fatalf("Error: failed to look up folder %s: %v", f.path, err)
		}
		if existing != nil {
			created[f.path] = existing.Id
			continue
		}

		folder := &entity.Folder{
			Id:     uuid.New(),
			UserId: user.Id,
			Name:   f.name,
			Path:   f.path,
		}
		if parentId, ok := created[parentOf(f.path)]; ok {
			pid := parentId
			folder.ParentId = &pid
		}
		if err := uow.FolderRepository().Create(ctx, folder); err != nil {
			log.Fatalf("Error: failed to create folder %s: %v", f.path, err)
		}
		created[f.path] = folder.Id
		log.Printf("Created folder %s", f.path)
	}

	log.Println("Seeding completed")
}

func parentOf(path string) string {
	for i := len(path) - 1; i > 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "/"
}
