package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"skillswap/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// skillPool is the vocabulary random users draw their skills from. Using a
// fixed pool keeps generated skills overlapping enough for discovery filters
// to return matches.
var skillPool = []string{
	"Web Development", "Graphic Design", "Photography", "Cooking", "Baking",
	"Guitar Lessons", "Piano Lessons", "Yoga Instruction", "Spanish Lessons",
	"French Lessons", "Creative Writing", "Video Editing", "Marketing",
	"Public Speaking", "Gardening", "Woodworking", "Knitting", "Pottery",
	"Data Analysis", "Illustration",
}

var availabilities = []string{
	models.AvailabilityWeekdays,
	models.AvailabilityEvenings,
	models.AvailabilityWeekends,
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a randomly generated public user. passwordHash is
// stored as-is; callers hash once and reuse it across the batch.
func (f *Factory) CreateUser(passwordHash string) (*models.User, error) {
	name := gofakeit.Name()
	user := &models.User{
		Name:          name,
		Email:         f.uniqueEmail(name),
		Password:      passwordHash,
		Location:      fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		SkillsOffered: f.pickSkills(1, 4),
		SkillsWanted:  f.pickSkills(1, 3),
		Availability:  availabilities[f.rng.Intn(len(availabilities))],
		ProfileStatus: models.ProfileStatusPublic,
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create random user: %w", err)
	}
	return user, nil
}

func (f *Factory) uniqueEmail(name string) string {
	slug := strings.ToLower(strings.ReplaceAll(name, " ", "."))
	return fmt.Sprintf("%s.%s@example.com", slug, gofakeit.LetterN(5))
}

func (f *Factory) pickSkills(min, max int) []string {
	n := min + f.rng.Intn(max-min+1)
	picked := make([]string, 0, n)
	seen := make(map[int]bool)
	for len(picked) < n {
		i := f.rng.Intn(len(skillPool))
		if seen[i] {
			continue
		}
		seen[i] = true
		picked = append(picked, skillPool[i])
	}
	return picked
}
