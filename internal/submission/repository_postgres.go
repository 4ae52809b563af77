package submission

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Insert parent + children (ONE TRANSACTION)
// --------------------------------------------------
func (r *PostgresRepository) InsertRecord(ctx context.Context, rec *Record) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	rec.Status = StatusSubmitted
	rec.Version = 1

	err = tx.QueryRow(ctx, `
		INSERT INTO submissions (
			id,
			restaurant_name,
			address,
			email,
			phone,
			website,
			online_ordering_url,
			logo_url,
			hero_image_url,
			founded_year,
			story,
			owner_quote,
			about_image_url,
			menu_file_url,
			hours,
			delivery_areas,
			delivery_instructions,
			instagram,
			facebook,
			twitter,
			comments,
			title_font,
			paragraph_font,
			status,
			version
		)
		VALUES (
			$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,
			$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,
			$21,$22,$23,$24,$25
		)
		RETURNING created_at, updated_at
	`,
		rec.ID,
		rec.RestaurantName,
		rec.Address,
		rec.Email,
		rec.Phone,
		rec.Website,
		rec.OnlineOrderingURL,
		rec.LogoURL,
		rec.HeroImageURL,
		rec.FoundedYear,
		rec.Story,
		rec.OwnerQuote,
		rec.AboutImageURL,
		rec.MenuFileURL,
		rec.Hours,
		rec.DeliveryAreas,
		rec.DeliveryInstructions,
		rec.Instagram,
		rec.Facebook,
		rec.Twitter,
		rec.Comments,
		rec.TitleFont,
		rec.ParagraphFont,
		rec.Status,
		rec.Version,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return err
	}

	for i := range rec.Dishes {
		d := &rec.Dishes[i]
		d.ID = uuid.New().String()
		d.SubmissionID = rec.ID
		if _, err := tx.Exec(ctx, `
			INSERT INTO dishes (id, submission_id, name, description, image_url, display_order)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, d.ID, d.SubmissionID, d.Name, d.Description, d.ImageURL, d.DisplayOrder); err != nil {
			return err
		}
	}

	for i := range rec.Deals {
		d := &rec.Deals[i]
		d.ID = uuid.New().String()
		d.SubmissionID = rec.ID
		if _, err := tx.Exec(ctx, `
			INSERT INTO deals (id, submission_id, title, description, image_url, display_order)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, d.ID, d.SubmissionID, d.Title, d.Description, d.ImageURL, d.DisplayOrder); err != nil {
			return err
		}
	}

	for i := range rec.Photos {
		p := &rec.Photos[i]
		p.ID = uuid.New().String()
		p.SubmissionID = rec.ID
		if _, err := tx.Exec(ctx, `
			INSERT INTO photos (id, submission_id, image_url, display_order)
			VALUES ($1,$2,$3,$4)
		`, p.ID, p.SubmissionID, p.ImageURL, p.DisplayOrder); err != nil {
			return err
		}
	}

	for i := range rec.Faqs {
		f := &rec.Faqs[i]
		f.ID = uuid.New().String()
		f.SubmissionID = rec.ID
		if _, err := tx.Exec(ctx, `
			INSERT INTO faqs (id, submission_id, question, answer, display_order)
			VALUES ($1,$2,$3,$4,$5)
		`, f.ID, f.SubmissionID, f.Question, f.Answer, f.DisplayOrder); err != nil {
			return err
		}
	}

	for i := range rec.Sections {
		s := &rec.Sections[i]
		s.ID = uuid.New().String()
		s.SubmissionID = rec.ID
		if _, err := tx.Exec(ctx, `
			INSERT INTO custom_sections (id, submission_id, title, description, image_url, position)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, s.ID, s.SubmissionID, s.Title, s.Description, s.ImageURL, s.Position); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// --------------------------------------------------
// List (admin dashboard)
// --------------------------------------------------
func (r *PostgresRepository) List(ctx context.Context) ([]*Submission, error) {
	rows, err := r.db.Query(ctx, submissionColumns+`
		FROM submissions
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// --------------------------------------------------
// Load parent + children ordered by display_order
// --------------------------------------------------
func (r *PostgresRepository) LoadRecord(ctx context.Context, id string) (*Record, error) {
	row := r.db.QueryRow(ctx, submissionColumns+`
		FROM submissions
		WHERE id = $1
	`, id)

	sub, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rec := &Record{Submission: *sub}

	dishRows, err := r.db.Query(ctx, `
		SELECT id, submission_id, name, description, image_url, display_order
		FROM dishes
		WHERE submission_id = $1
		ORDER BY display_order ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer dishRows.Close()
	for dishRows.Next() {
		var d Dish
		if err := dishRows.Scan(&d.ID, &d.SubmissionID, &d.Name, &d.Description, &d.ImageURL, &d.DisplayOrder); err != nil {
			return nil, err
		}
		rec.Dishes = append(rec.Dishes, d)
	}

	dealRows, err := r.db.Query(ctx, `
		SELECT id, submission_id, title, description, image_url, display_order
		FROM deals
		WHERE submission_id = $1
		ORDER BY display_order ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer dealRows.Close()
	for dealRows.Next() {
		var d Deal
		if err := dealRows.Scan(&d.ID, &d.SubmissionID, &d.Title, &d.Description, &d.ImageURL, &d.DisplayOrder); err != nil {
			return nil, err
		}
		rec.Deals = append(rec.Deals, d)
	}

	photoRows, err := r.db.Query(ctx, `
		SELECT id, submission_id, image_url, display_order
		FROM photos
		WHERE submission_id = $1
		ORDER BY display_order ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer photoRows.Close()
	for photoRows.Next() {
		var p Photo
		if err := photoRows.Scan(&p.ID, &p.SubmissionID, &p.ImageURL, &p.DisplayOrder); err != nil {
			return nil, err
		}
		rec.Photos = append(rec.Photos, p)
	}

	faqRows, err := r.db.Query(ctx, `
		SELECT id, submission_id, question, answer, display_order
		FROM faqs
		WHERE submission_id = $1
		ORDER BY display_order ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer faqRows.Close()
	for faqRows.Next() {
		var f Faq
		if err := faqRows.Scan(&f.ID, &f.SubmissionID, &f.Question, &f.Answer, &f.DisplayOrder); err != nil {
			return nil, err
		}
		rec.Faqs = append(rec.Faqs, f)
	}

	sectionRows, err := r.db.Query(ctx, `
		SELECT id, submission_id, title, description, image_url, position
		FROM custom_sections
		WHERE submission_id = $1
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer sectionRows.Close()
	for sectionRows.Next() {
		var s CustomSection
		if err := sectionRows.Scan(&s.ID, &s.SubmissionID, &s.Title, &s.Description, &s.ImageURL, &s.Position); err != nil {
			return nil, err
		}
		rec.Sections = append(rec.Sections, s)
	}

	return rec, nil
}

// --------------------------------------------------
// Admin save: scalars (VERSION CHECKED) + child diffs, one tx
// --------------------------------------------------
func (r *PostgresRepository) SaveEdits(
	ctx context.Context,
	sub *Submission,
	dishes DishDiff,
	deals DealDiff,
) error {

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE submissions SET
			restaurant_name       = $1,
			address               = $2,
			email                 = $3,
			phone                 = $4,
			website               = $5,
			online_ordering_url   = $6,
			founded_year          = $7,
			story                 = $8,
			owner_quote           = $9,
			hours                 = $10,
			delivery_areas        = $11,
			delivery_instructions = $12,
			instagram             = $13,
			facebook              = $14,
			twitter               = $15,
			comments              = $16,
			title_font            = $17,
			paragraph_font        = $18,
			version               = version + 1,
			updated_at            = CURRENT_TIMESTAMP
		WHERE id = $19
		  AND version = $20
	`,
		sub.RestaurantName,
		sub.Address,
		sub.Email,
		sub.Phone,
		sub.Website,
		sub.OnlineOrderingURL,
		sub.FoundedYear,
		sub.Story,
		sub.OwnerQuote,
		sub.Hours,
		sub.DeliveryAreas,
		sub.DeliveryInstructions,
		sub.Instagram,
		sub.Facebook,
		sub.Twitter,
		sub.Comments,
		sub.TitleFont,
		sub.ParagraphFont,
		sub.ID,
		sub.Version,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Either the row is gone or someone saved in between.
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM submissions WHERE id = $1)`, sub.ID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrVersionConflict
	}

	for _, id := range dishes.DeleteIDs {
		if _, err := tx.Exec(ctx,
			`DELETE FROM dishes WHERE id = $1 AND submission_id = $2`, id, sub.ID,
		); err != nil {
			return err
		}
	}
	for _, d := range dishes.Update {
		if _, err := tx.Exec(ctx, `
			UPDATE dishes
			SET name = $1, description = $2, image_url = $3, display_order = $4
			WHERE id = $5 AND submission_id = $6
		`, d.Name, d.Description, d.ImageURL, d.DisplayOrder, d.ID, sub.ID); err != nil {
			return err
		}
	}
	for _, d := range dishes.Insert {
		if _, err := tx.Exec(ctx, `
			INSERT INTO dishes (id, submission_id, name, description, image_url, display_order)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, uuid.New().String(), sub.ID, d.Name, d.Description, d.ImageURL, d.DisplayOrder); err != nil {
			return err
		}
	}

	for _, id := range deals.DeleteIDs {
		if _, err := tx.Exec(ctx,
			`DELETE FROM deals WHERE id = $1 AND submission_id = $2`, id, sub.ID,
		); err != nil {
			return err
		}
	}
	for _, d := range deals.Update {
		if _, err := tx.Exec(ctx, `
			UPDATE deals
			SET title = $1, description = $2, image_url = $3, display_order = $4
			WHERE id = $5 AND submission_id = $6
		`, d.Title, d.Description, d.ImageURL, d.DisplayOrder, d.ID, sub.ID); err != nil {
			return err
		}
	}
	for _, d := range deals.Insert {
		if _, err := tx.Exec(ctx, `
			INSERT INTO deals (id, submission_id, title, description, image_url, display_order)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, uuid.New().String(), sub.ID, d.Title, d.Description, d.ImageURL, d.DisplayOrder); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// --------------------------------------------------
// One-way status transition
// --------------------------------------------------
func (r *PostgresRepository) MarkLive(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE submissions
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`, StatusLive, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Scan helpers
// --------------------------------------------------

const submissionColumns = `
	SELECT
		id,
		restaurant_name,
		address,
		email,
		phone,
		website,
		online_ordering_url,
		logo_url,
		hero_image_url,
		founded_year,
		story,
		owner_quote,
		about_image_url,
		menu_file_url,
		hours,
		delivery_areas,
		delivery_instructions,
		instagram,
		facebook,
		twitter,
		comments,
		title_font,
		paragraph_font,
		status,
		version,
		created_at,
		updated_at
`

func scanSubmission(row pgx.Row) (*Submission, error) {
	var s Submission
	err := row.Scan(
		&s.ID,
		&s.RestaurantName,
		&s.Address,
		&s.Email,
		&s.Phone,
		&s.Website,
		&s.OnlineOrderingURL,
		&s.LogoURL,
		&s.HeroImageURL,
		&s.FoundedYear,
		&s.Story,
		&s.OwnerQuote,
		&s.AboutImageURL,
		&s.MenuFileURL,
		&s.Hours,
		&s.DeliveryAreas,
		&s.DeliveryInstructions,
		&s.Instagram,
		&s.Facebook,
		&s.Twitter,
		&s.Comments,
		&s.TitleFont,
		&s.ParagraphFont,
		&s.Status,
		&s.Version,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
