package submission

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"tavolo/internal/optimize"
	"tavolo/internal/wizard"
)

// Uploader is the object-store contract the persister needs.
type Uploader interface {
	Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string) (string, error)
}

// CleanupQueue collects uploaded keys that a failed persist left
// behind so a background worker can delete them.
type CleanupQueue interface {
	Enqueue(ctx context.Context, bucket, key string) error
}

// Notifier is called after a successful persist. Best-effort only.
type Notifier interface {
	SubmissionReceived(ctx context.Context, rec *Record, doc *ExportDocument) error
}

// Buckets names the two logical buckets uploads route to.
type Buckets struct {
	Images    string
	Documents string
}

type Persister struct {
	repo     Repository
	uploads  Uploader
	buckets  Buckets
	queue    CleanupQueue
	notifier Notifier
}

func NewPersister(
	repo Repository,
	uploads Uploader,
	buckets Buckets,
	queue CleanupQueue,
	notifier Notifier,
) *Persister {
	return &Persister{
		repo:     repo,
		uploads:  uploads,
		buckets:  buckets,
		queue:    queue,
		notifier: notifier,
	}
}

type stagedUpload struct {
	bucket string
	key    string
}

// --------------------------------------------------
// Persist: phase 1 uploads, phase 2 one transaction
// --------------------------------------------------
//
// Phase 1 normalizes and uploads every attached file sequentially,
// staging the object keys. Phase 2 writes parent + children in a
// single transaction. Any failure enqueues the staged keys for
// deletion and surfaces one error; nothing partial stays visible.
func (p *Persister) Persist(ctx context.Context, draft *wizard.Draft) (string, error) {
	var staged []stagedUpload

	upload := func(f optimize.File, profile optimize.Profile, bucket, category, label string) (*string, error) {
		normalized := optimize.Normalize(f, profile)
		key := fmt.Sprintf("%s/%d-%s", category, time.Now().UnixMilli(), label)

		url, err := p.uploads.Upload(
			ctx,
			bucket,
			key,
			bytes.NewReader(normalized.Data),
			normalized.ContentType,
		)
		if err != nil {
			return nil, err
		}
		staged = append(staged, stagedUpload{bucket: bucket, key: key})
		return &url, nil
	}

	abort := func(cause error) (string, error) {
		p.enqueueStaged(ctx, staged)
		return "", fmt.Errorf("persist submission: %w", cause)
	}

	rec := recordFromDraft(draft)

	// ---------- phase 1: uploads (sequential, awaited) ----------

	if draft.BusinessInfo.Logo != nil {
		url, err := upload(*draft.BusinessInfo.Logo, optimize.ProfileLogo, p.buckets.Images, "logos", "logo.png")
		if err != nil {
			return abort(err)
		}
		rec.LogoURL = url
	}

	if draft.BusinessInfo.HeroImage != nil {
		url, err := upload(*draft.BusinessInfo.HeroImage, optimize.ProfileGeneral, p.buckets.Images, "hero", "hero.webp")
		if err != nil {
			return abort(err)
		}
		rec.HeroImageURL = url
	}

	if draft.About.AboutImage != nil {
		url, err := upload(*draft.About.AboutImage, optimize.ProfileGeneral, p.buckets.Images, "about", "about.webp")
		if err != nil {
			return abort(err)
		}
		rec.AboutImageURL = url
	}

	for i, section := range draft.About.CustomSections {
		if section.Image == nil {
			continue
		}
		url, err := upload(*section.Image, optimize.ProfileGeneral, p.buckets.Images, "sections", fmt.Sprintf("section-%d.webp", i))
		if err != nil {
			return abort(err)
		}
		rec.Sections[i].ImageURL = url
	}

	if draft.MenuFile != nil {
		// Menu routes to the image or document bucket by sniffed type.
		bucket := p.buckets.Documents
		if draft.MenuFile.IsImage() {
			bucket = p.buckets.Images
		}
		url, err := upload(*draft.MenuFile, optimize.ProfileGeneral, bucket, "menus", "menu"+extensionOf(*draft.MenuFile))
		if err != nil {
			return abort(err)
		}
		rec.MenuFileURL = url
	}

	for i, photo := range draft.Photos {
		url, err := upload(photo, optimize.ProfileGeneral, p.buckets.Images, "photos", fmt.Sprintf("photo-%d.webp", i))
		if err != nil {
			return abort(err)
		}
		rec.Photos[i].ImageURL = *url
	}

	for i, dish := range draft.Dishes {
		if dish.Image == nil {
			continue
		}
		url, err := upload(*dish.Image, optimize.ProfileGeneral, p.buckets.Images, "dishes", fmt.Sprintf("dish-%d.webp", i))
		if err != nil {
			return abort(err)
		}
		rec.Dishes[i].ImageURL = url
	}

	for i, deal := range draft.Deals {
		if deal.Image == nil {
			continue
		}
		url, err := upload(*deal.Image, optimize.ProfileGeneral, p.buckets.Images, "deals", fmt.Sprintf("deal-%d.webp", i))
		if err != nil {
			return abort(err)
		}
		rec.Deals[i].ImageURL = url
	}

	// ---------- phase 2: one transactional multi-table write ----------

	if err := p.repo.InsertRecord(ctx, rec); err != nil {
		return abort(err)
	}

	// Notification never fails the persist.
	if p.notifier != nil {
		doc := BuildDocument(rec, time.Now().UTC(), false)
		if err := p.notifier.SubmissionReceived(ctx, rec, doc); err != nil {
			log.Printf("NOTIFY_FAILED submission=%s err=%v", rec.ID, err)
		}
	}

	return rec.ID, nil
}

func (p *Persister) enqueueStaged(ctx context.Context, staged []stagedUpload) {
	if p.queue == nil {
		return
	}
	for _, s := range staged {
		if err := p.queue.Enqueue(ctx, s.bucket, s.key); err != nil {
			log.Printf("CLEANUP_ENQUEUE_FAILED bucket=%s key=%s err=%v", s.bucket, s.key, err)
		}
	}
}

// recordFromDraft maps scalar draft fields onto a Record and lays
// out child rows with 1-based display order.
func recordFromDraft(d *wizard.Draft) *Record {
	rec := &Record{
		Submission: Submission{
			RestaurantName:       d.BusinessInfo.Name,
			Address:              d.BusinessInfo.Address,
			Email:                d.BusinessInfo.Email,
			Phone:                d.BusinessInfo.Phone,
			Website:              d.BusinessInfo.Website,
			OnlineOrderingURL:    d.BusinessInfo.OnlineOrderingURL,
			FoundedYear:          d.About.FoundedYear,
			Story:                d.About.Story,
			OwnerQuote:           d.About.OwnerQuote,
			Hours:                d.DeliveryHours.Hours,
			DeliveryAreas:        d.DeliveryHours.DeliveryAreas,
			DeliveryInstructions: d.DeliveryHours.Instructions,
			Instagram:            d.Social.Instagram,
			Facebook:             d.Social.Facebook,
			Twitter:              d.Social.Twitter,
			Comments:             d.Social.Comments,
			TitleFont:            d.Fonts.TitleFont,
			ParagraphFont:        d.Fonts.ParagraphFont,
		},
	}

	for i, dish := range d.Dishes {
		rec.Dishes = append(rec.Dishes, Dish{
			Name:         dish.Name,
			Description:  dish.Description,
			DisplayOrder: i + 1,
		})
	}

	for i, deal := range d.Deals {
		rec.Deals = append(rec.Deals, Deal{
			Title:        deal.Title,
			Description:  deal.Description,
			DisplayOrder: i + 1,
		})
	}

	for i := range d.Photos {
		rec.Photos = append(rec.Photos, Photo{DisplayOrder: i + 1})
	}

	for i, faq := range d.Faqs {
		rec.Faqs = append(rec.Faqs, Faq{
			Question:     faq.Question,
			Answer:       faq.Answer,
			DisplayOrder: i + 1,
		})
	}

	for i, section := range d.About.CustomSections {
		position := section.Position
		if position == 0 {
			position = i + 1
		}
		rec.Sections = append(rec.Sections, CustomSection{
			Title:       section.Title,
			Description: section.Description,
			Position:    position,
		})
	}

	return rec
}

func extensionOf(f optimize.File) string {
	if f.IsPDF() {
		return ".pdf"
	}
	// image menus come out of the normalizer as webp
	return ".webp"
}
