package caption

import "fmt"

// Category-specific prompt templates, English and French. The brand
// language is baked in on purpose: captions feed local SEO for one
// restaurant site at a time.
var categoryPrompts = map[string]map[string]string{
	"en": {
		"popular-dishes": `Analyze this food image and create an appetizing description for %s. Include visible ingredients, cooking style, and presentation. Make it SEO-friendly for a restaurant menu.`,
		"gallery":        `Describe this restaurant photo from %s focusing on ambiance, food presentation, or dining experience.`,
		"deals":          `Create a promotional description for this food/offer image at %s that emphasizes value and appeal. Mention it is available for dine-in, takeout, or delivery.`,
		"menu":           `Analyze this menu image and create a short descriptive caption for %s.`,
	},
	"fr": {
		"popular-dishes": `Analysez cette image de plat et créez une description appétissante pour %s. Incluez les ingrédients visibles, le style de cuisson et la présentation. Rendez-la SEO pour un menu de restaurant.`,
		"gallery":        `Décrivez cette photo de restaurant de %s en mettant l'accent sur l'ambiance, la présentation des plats ou l'expérience culinaire.`,
		"deals":          `Créez une description promotionnelle pour cette image d'offre chez %s qui met l'accent sur la valeur et l'attrait. Mentionnez la disponibilité en salle, à emporter ou en livraison.`,
		"menu":           `Analysez cette image de menu et créez une courte légende descriptive pour %s.`,
	},
}

// BuildCaptionPrompt produces a single prompt that demands
// JSON-only output so the response parses without scraping.
func BuildCaptionPrompt(restaurantName, category, language string) string {
	if language != "fr" {
		language = "en"
	}

	body, ok := categoryPrompts[language][category]
	if !ok {
		if language == "fr" {
			body = `Analysez cette image et fournissez une description SEO pour %s.`
		} else {
			body = `Analyze this image and provide an SEO-optimized description for %s.`
		}
	}

	return fmt.Sprintf(`You are an expert food photographer and SEO content writer for %s.

%s

Respond with STRICT JSON only, no markdown, no explanations:
{"dishName": "suggested dish name", "description": "SEO description", "suggestedCategory": "category if not provided"}`,
		restaurantName,
		fmt.Sprintf(body, restaurantName),
	)
}
