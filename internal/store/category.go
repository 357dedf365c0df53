package store

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/financas-app/backend/internal/errs"
	"github.com/financas-app/backend/internal/models"
	"github.com/financas-app/backend/pkg/logger"
)

type categoryStore struct {
	client *firestore.Client
}

func NewCategoryStore(client *firestore.Client) *categoryStore {
	return &categoryStore{client: client}
}

func (s *categoryStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("categories")
}

func (s *categoryStore) transactions(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("transactions")
}

func (s *categoryStore) budgets(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("budgets")
}

// Create enforces case-insensitive name uniqueness inside the transaction
// that writes the document. Per-user category sets are small enough to read
// whole.
func (s *categoryStore) Create(ctx context.Context, uid string, c *models.Category) error {
	coll := s.collection(uid)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tr *firestore.Transaction) error {
		docs, err := tr.Documents(coll).GetAll()
		if err != nil {
			return err
		}
		for _, d := range docs {
			var existing models.Category
			if err := d.DataTo(&existing); err != nil {
				return err
			}
			if strings.EqualFold(existing.Name, c.Name) {
				return errs.NewAlreadyExistsError("category already exists")
			}
		}
		return tr.Create(coll.Doc(c.CategoryID), c)
	})
	if err != nil {
		if _, ok := err.(*errs.AlreadyExistsError); ok {
			return err
		}
		return errs.NewDatabaseError("create", "failed to create category", err)
	}
	return nil
}

func (s *categoryStore) Get(ctx context.Context, uid, categoryID string) (*models.Category, error) {
	doc, err := s.collection(uid).Doc(categoryID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("category not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get category", err)
	}
	var c models.Category
	if err := doc.DataTo(&c); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse category data", err)
	}
	return &c, nil
}

func (s *categoryStore) List(ctx context.Context, uid string) ([]models.Category, error) {
	docs, err := s.collection(uid).OrderBy("name", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list categories", err)
	}
	cats := make([]models.Category, 0, len(docs))
	for _, d := range docs {
		var c models.Category
		if err := d.DataTo(&c); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse category data", err)
		}
		cats = append(cats, c)
	}
	return cats, nil
}

func (s *categoryStore) Delete(ctx context.Context, uid, categoryID string) error {
	_, err := s.collection(uid).Doc(categoryID).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete category", err)
	}
	return nil
}

// RenameCascade rewrites the category document and every transaction and
// budget referencing the old name in one transaction, so a rename can never
// strand ledger entries under a name that no longer exists.
func (s *categoryStore) RenameCascade(ctx context.Context, uid, categoryID, oldName, newName, color string) error {
	log := logger.FromContext(ctx)
	now := time.Now()

	catRef := s.collection(uid).Doc(categoryID)
	txQuery := s.transactions(uid).Where("category", "==", oldName)
	budgetQuery := s.budgets(uid).Where("category", "==", oldName)

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tr *firestore.Transaction) error {
		txDocs, err := tr.Documents(txQuery).GetAll()
		if err != nil {
			return err
		}
		budgetDocs, err := tr.Documents(budgetQuery).GetAll()
		if err != nil {
			return err
		}

		if err := tr.Update(catRef, []firestore.Update{
			{Path: "name", Value: newName},
			{Path: "color", Value: color},
			{Path: "updatedAt", Value: now},
		}); err != nil {
			return err
		}
		for _, d := range append(txDocs, budgetDocs...) {
			if err := tr.Update(d.Ref, []firestore.Update{
				{Path: "category", Value: newName},
				{Path: "updatedAt", Value: now},
			}); err != nil {
				return err
			}
		}

		log.Info("category rename cascade",
			"category_id", categoryID,
			"transactions", len(txDocs),
			"budgets", len(budgetDocs))
		return nil
	})
	if err != nil {
		return errs.NewDatabaseError("update", "failed to rename category", err)
	}
	return nil
}

// SeedDefaults upserts the starter category set for a new user. Each write
// is independent and idempotent, so the bulk writer is enough here.
func (s *categoryStore) SeedDefaults(ctx context.Context, uid string, cats []models.Category) error {
	if len(cats) == 0 {
		return nil
	}

	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(cats))
	for i := range cats {
		job, err := bw.Set(s.collection(uid).Doc(cats[i].CategoryID), cats[i], firestore.MergeAll)
		if err != nil {
			bw.End()
			return errs.NewDatabaseError("create", "failed to schedule category seed", err)
		}
		jobs = append(jobs, job)
	}

	bw.End()
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return errs.NewDatabaseError("create", "failed to seed categories", err)
		}
	}
	return nil
}
