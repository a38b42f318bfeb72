package usecase

import (
	"fmt"
	"unicode/utf8"
)

// maxPromptText bounds how much page text is embedded in a prompt. Longer
// pages are cut at this prefix; menus live near the top of the visible text
// often enough that a word-aware cut is not worth the complexity.
const maxPromptText = 25000

const extractionPromptTemplate = `You are a data extraction expert. Your task is to analyze text scraped from a restaurant's website and find the daily / lunch menu.

WORK STEP BY STEP:
1. Scan the text and identify the block that most closely matches a daily menu. Ignore navigation, footers and the permanent menu. Look for cues like 'Daily menu', 'Lunch menu', 'Denní menu', 'Polední nabídka'.
2. Extract the dishes from that block.
3. Format the result as a JSON object.

The resulting JSON must match this structure EXACTLY:
{
  "restaurant_name": "string",
  "menu_items": [
    { "category": "string", "name": "string", "price": "number|null", "weight": "string|undefined", "is_vegetarian": "boolean", "is_vegan": "boolean", "calories": "number|undefined", "health_score": "integer 1-5|undefined" }
  ],
  "daily_menu": "boolean",
  "closed": "boolean|undefined",
  "source_url": "string"
}

EXAMPLE (input full of boilerplate):
INPUT:
---
Menu Contact Lunch menu: Soup: Potato soup 35. Main course: 150g Roast pork with dumplings 150. About us
---
OUTPUT:
---json
{
  "restaurant_name": "Restaurant from URL",
  "menu_items": [
    { "category": "Soup", "name": "Potato soup", "price": 35, "is_vegetarian": true, "is_vegan": false, "calories": 180, "health_score": 3 },
    { "category": "Main course", "name": "Roast pork with dumplings", "price": 150, "weight": "150g", "is_vegetarian": false, "is_vegan": false, "calories": 850, "health_score": 2 }
  ],
  "daily_menu": true,
  "source_url": "%[1]s"
}
---

IMPORTANT RULES:
- 'is_vegetarian' and 'is_vegan': infer from the dish name and description.
- 'calories': estimate per portion from the dish type and weight. Omit the field if you cannot make a reasonable estimate.
- 'health_score': integer 1 to 5. 1 = fried or heavy, 5 = light and vegetable-forward. Omit if unsure.
- 'date': if you find a date, ALWAYS return it as YYYY-MM-DD. If you find no date, do not return the 'date' field at all.
- If the page says the restaurant is closed today, set 'closed' to true and return 'menu_items' as [].
- If you find no daily menu, return 'menu_items' as an empty array [].
- 'restaurant_name': find it in the text, otherwise derive it from the URL.
- 'weight': extract from the dish name.
- 'source_url': always exactly %[1]s

Now analyze the real text:
---
%[2]s
---`

// BuildExtractionPrompt produces the instruction text sent to the model for
// one source. Deterministic: the same text and URL always yield the same
// prompt. The page text is truncated to bound model cost.
func BuildExtractionPrompt(text, sourceURL string) string {
	if len(text) > maxPromptText {
		// Back off to a rune boundary so the cut never leaves a broken
		// UTF-8 sequence in the prompt (menu text is rarely pure ASCII).
		cut := maxPromptText
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return fmt.Sprintf(extractionPromptTemplate, sourceURL, text)
}
