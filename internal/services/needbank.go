package services

// The item bank is fixed configuration: 14 items, 2 per category, shared by
// both perspectives. Loaded once at process start, never modified.
var NeedItems = []NeedItem{
	{ID: "security_1", Category: CategorySecurity, Question: "I feel emotionally safe sharing vulnerable feelings"},
	{ID: "security_2", Category: CategorySecurity, Question: "I trust our relationship has a stable foundation"},
	{ID: "autonomy_1", Category: CategoryAutonomy, Question: "I have space to make independent decisions"},
	{ID: "autonomy_2", Category: CategoryAutonomy, Question: "My individual interests and goals are respected"},
	{ID: "belonging_1", Category: CategoryBelonging, Question: "I feel deeply understood and accepted"},
	{ID: "belonging_2", Category: CategoryBelonging, Question: "We share meaningful quality time together"},
	{ID: "fairness_1", Category: CategoryFairness, Question: "Household responsibilities feel fairly distributed"},
	{ID: "fairness_2", Category: CategoryFairness, Question: "Emotional labor and planning feel balanced"},
	{ID: "play_1", Category: CategoryPlay, Question: "We laugh and have fun together regularly"},
	{ID: "play_2", Category: CategoryPlay, Question: "There's room for playfulness and lightheartedness"},
	{ID: "rest_1", Category: CategoryRest, Question: "I can fully relax and be unguarded"},
	{ID: "rest_2", Category: CategoryRest, Question: "Our relationship feels like a place of rest, not stress"},
	{ID: "recognition_1", Category: CategoryRecognition, Question: "My efforts and contributions are noticed"},
	{ID: "recognition_2", Category: CategoryRecognition, Question: "I feel valued for who I am, not just what I do"},
}

// itemCategories indexes the bank by item id for scoring.
var itemCategories = func() map[string]NeedCategory {
	m := make(map[string]NeedCategory, len(NeedItems))
	for _, it := range NeedItems {
		m[it.ID] = it.Category
	}
	return m
}()

// Mood is a selectable mood option.
type Mood struct {
	Emoji string `json:"emoji"`
	Label string `json:"label"`
	Value string `json:"value"`
}

var Moods = []Mood{
	{Emoji: "\U0001F642", Label: "Calm", Value: "calm"},
	{Emoji: "\U0001F615", Label: "Worried", Value: "worried"},
	{Emoji: "\U0001F621", Label: "Frustrated", Value: "frustrated"},
	{Emoji: "\U0001F622", Label: "Hurt", Value: "hurt"},
	{Emoji: "\U0001F634", Label: "Tired", Value: "tired"},
}

var MoodTags = []string{"work", "health", "family", "money", "other"}

// RepairScript is a canned de-escalation template offered to users.
type RepairScript struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Script string `json:"script"`
}

var RepairScripts = []RepairScript{
	{ID: "timeout", Title: "Time-out + Return", Script: "I'm getting flooded. I care about this and want to give it my best. Can we take 20 minutes and return at :45?"},
	{ID: "small_repair", Title: "Small Repair", Script: "I snapped earlier. I'm sorry. I value your effort on this. Can we reset and try again?"},
	{ID: "appreciation", Title: "Appreciation", Script: "I noticed you handled [specific thing] today. Thank you, it helped me breathe."},
	{ID: "specific_ask", Title: "Specific Ask", Script: "Could we try [specific behavior] [specific time/frequency] this week?"},
	{ID: "need_offer", Title: "Need + Offer", Script: "I need [specific need]. I can offer [specific thing] in return. Does that work?"},
}
