package actions

import (
	"context"
	"strings"

	"github.com/Sirpi-57/diya-jewelry-bot/internal/bot"
	"github.com/Sirpi-57/diya-jewelry-bot/internal/models"
)

var positiveWords = []string{
	"good", "great", "excellent", "amazing", "wonderful",
	"love", "like", "best", "fantastic", "helpful", "happy",
	"satisfied", "perfect", "awesome", "impressive",
}

var negativeWords = []string{
	"bad", "poor", "terrible", "awful", "horrible",
	"hate", "dislike", "worst", "disappointing", "unhappy",
	"unsatisfied", "broken", "useless", "waste", "expensive",
}

// AnalyzeReviewSentiment classifies a product review with a keyword count
// and thanks the customer accordingly.
func (a *Actions) AnalyzeReviewSentiment(ctx context.Context, tr *bot.Tracker, d *bot.Dispatcher) []bot.Event {
	review := strings.TrimSpace(tr.LatestMessage.Text)
	lowered := strings.ToLower(review)

	posCount := countMatches(lowered, positiveWords)
	negCount := countMatches(lowered, negativeWords)

	sentiment := "negative"
	if posCount > negCount {
		sentiment = "positive"
	}

	if sentiment == "positive" {
		d.Utter("Thank you so much for your kind words! We're thrilled that you love your jewelry. Reviews like yours make our day! ✨")
	} else {
		d.Utter("Thank you for your honest feedback. We're sorry your experience didn't meet expectations. Our team will review it and reach out to make things right. 🙏")
	}
	d.Utter("If you'd like, you can also share a photo of how you styled your jewelry. We'd love to see it! 📸")

	return []bot.Event{
		bot.SlotSet(models.SlotReviewText, review),
		bot.SlotSet(models.SlotReviewSentiment, sentiment),
	}
}

// HandleReviewImage acknowledges a photo-upload request. File uploads don't
// travel through the dialogue engine, so this only confirms the intent.
func (a *Actions) HandleReviewImage(ctx context.Context, tr *bot.Tracker, d *bot.Dispatcher) []bot.Event {
	d.Utter("Thank you for wanting to share an image with your review! In a real application, this would open an upload dialog.")
	d.Utter("Your review has been submitted. Thank you for your feedback! 💛")
	return nil
}

func countMatches(text string, words []string) int {
	count := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			count++
		}
	}
	return count
}
