// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"time"

	"skillswap/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls seeding behavior.
type Options struct {
	// Wipe deletes existing rows before seeding.
	Wipe bool
	// RandomUsers is the number of extra generated users beyond the demo set.
	RandomUsers int
	// Password is assigned to every seeded user. Defaults to "Password1234".
	Password string
}

// demoUser pairs a user record with the index-based references used by the
// demo swaps and feedback below.
type demoUser struct {
	name          string
	email         string
	location      string
	skillsOffered []string
	skillsWanted  []string
	availability  string
	status        models.ProfileStatus
}

var demoUsers = []demoUser{
	{"Alice Johnson", "alice@example.com", "San Francisco, CA",
		[]string{"Web Development", "React", "Node.js"},
		[]string{"Graphic Design", "Pottery"},
		models.AvailabilityEvenings, models.ProfileStatusPublic},
	{"Bob Williams", "bob@example.com", "New York, NY",
		[]string{"Graphic Design", "Illustration", "Logo Design"},
		[]string{"Web Development", "Yoga"},
		models.AvailabilityWeekends, models.ProfileStatusPublic},
	{"Charlie Brown", "charlie@example.com", "Chicago, IL",
		[]string{"Creative Writing", "Baking", "Content Creation"},
		[]string{"Photography", "Marketing"},
		models.AvailabilityWeekdays, models.ProfileStatusPublic},
	{"Diana Prince", "diana@example.com", "Austin, TX",
		[]string{"Marketing Strategy", "SEO", "Social Media"},
		[]string{"Baking", "Public Speaking"},
		models.AvailabilityEvenings, models.ProfileStatusPublic},
	{"Ethan Hunt", "ethan@example.com", "Miami, FL",
		[]string{"Guitar Lessons", "Music Production", "Songwriting"},
		[]string{"Web Development", "Cooking"},
		models.AvailabilityWeekends, models.ProfileStatusPublic},
	{"Fiona Glenanne", "fiona@example.com", "Los Angeles, CA",
		[]string{"Yoga Instruction", "Meditation", "Fitness Coaching"},
		[]string{"Graphic Design", "Gardening"},
		models.AvailabilityWeekdays, models.ProfileStatusPublic},
	{"George Costanza", "george@example.com", "New York, NY",
		[]string{"Architecture", "Urban Planning"},
		[]string{"Latex Sales", "Hand-modeling"},
		models.AvailabilityEvenings, models.ProfileStatusPrivate},
	{"Hannah Montana", "hannah@example.com", "Malibu, CA",
		[]string{"Singing", "Stage Performance"},
		[]string{"Normal Life", "Disguise"},
		models.AvailabilityWeekends, models.ProfileStatusPublic},
	{"Ian Malcolm", "ian@example.com", "Isla Nublar",
		[]string{"Chaos Theory", "Witty Repartee"},
		[]string{"Dinosaur Taming", "Helicopter Piloting"},
		models.AvailabilityWeekends, models.ProfileStatusPublic},
	{"Jane Smith", "jane@example.com", "Seattle, WA",
		[]string{"Data Analysis", "Python", "Machine Learning"},
		[]string{"Project Management", "Public Speaking"},
		models.AvailabilityWeekdays, models.ProfileStatusPublic},
}

// demoSwap references demo users by their 1-based position in demoUsers.
type demoSwap struct {
	requester    int
	responder    int
	offeredSkill string
	wantedSkill  string
	message      string
	status       models.SwapStatus
	daysAgo      int
}

var demoSwaps = []demoSwap{
	{2, 1, "Graphic Design", "Web Development",
		"Hey Alice, I can help with your branding if you can build a portfolio site for me.",
		models.SwapStatusCompleted, 120},
	{3, 1, "Baking", "Web Development",
		"I can bake you the best cookies for a week for some help on my blog.",
		models.SwapStatusAccepted, 45},
	{1, 2, "React", "Pottery",
		"Looking to learn pottery, can teach you React in exchange!",
		models.SwapStatusPending, 10},
	{4, 3, "SEO", "Baking",
		"I will get your food blog to the first page of Google for some sourdough lessons.",
		models.SwapStatusCompleted, 60},
	{5, 4, "Guitar Lessons", "Marketing Strategy",
		"Need help marketing my new album. Can teach you guitar.",
		models.SwapStatusPending, 8},
	{1, 5, "Node.js", "Guitar Lessons",
		"Hi Ethan, I'm a developer who would love to learn guitar. Can help with backend work.",
		models.SwapStatusCompleted, 14},
	{6, 2, "Yoga Instruction", "Illustration",
		"Can offer private yoga sessions for some custom illustrations for my studio.",
		models.SwapStatusCompleted, 150},
	{2, 6, "Logo Design", "Yoga Instruction",
		"Hi Fiona, I can design a new logo for your yoga business in exchange for a few classes.",
		models.SwapStatusPending, 9},
	{8, 9, "Singing", "Chaos Theory",
		"Trade singing lessons for an introduction to chaos theory?",
		models.SwapStatusRejected, 30},
}

// demoFeedback references demo swaps and users by 1-based position.
type demoFeedback struct {
	swap     int
	reviewer int
	reviewed int
	rating   int
	comment  string
}

// Feedback only ever attaches to completed swaps, mirroring what the service
// layer lets real users create.
var demoFeedbackEntries = []demoFeedback{
	{1, 2, 1, 5, "Amazing collaboration! Very knowledgeable."},
	{1, 1, 2, 4, "Great to work with, very responsive."},
	{4, 4, 3, 5, "Fantastic baker and a great teacher."},
	{4, 3, 4, 4, "Helpful with my marketing strategy."},
	{6, 1, 5, 5, "Excellent guitar lessons."},
	{6, 5, 1, 4, "Solid backend help, explained everything clearly."},
	{7, 6, 2, 3, "Good, but scheduling was a bit difficult."},
	{7, 2, 6, 5, "The best yoga instructor!"},
}

// Run seeds the database with the demo marketplace plus any requested random
// users. It is idempotent only when Wipe is set.
func Run(db *gorm.DB, opts Options) error {
	if opts.Password == "" {
		opts.Password = "Password1234"
	}

	if opts.Wipe {
		if err := wipe(db); err != nil {
			return err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	users := make([]*models.User, len(demoUsers))
	for i, d := range demoUsers {
		u := &models.User{
			Name:          d.name,
			Email:         d.email,
			Password:      string(hash),
			Location:      d.location,
			SkillsOffered: d.skillsOffered,
			SkillsWanted:  d.skillsWanted,
			Availability:  d.availability,
			ProfileStatus: d.status,
		}
		if err := db.Create(u).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", d.email, err)
		}
		users[i] = u
	}

	swaps := make([]*models.SwapRequest, len(demoSwaps))
	for i, d := range demoSwaps {
		sw := &models.SwapRequest{
			RequesterID:  users[d.requester-1].ID,
			ResponderID:  users[d.responder-1].ID,
			OfferedSkill: d.offeredSkill,
			WantedSkill:  d.wantedSkill,
			Message:      d.message,
			Status:       d.status,
			CreatedAt:    time.Now().AddDate(0, 0, -d.daysAgo),
		}
		if err := db.Create(sw).Error; err != nil {
			return fmt.Errorf("seed swap %d: %w", i+1, err)
		}
		swaps[i] = sw
	}

	for i, d := range demoFeedbackEntries {
		f := &models.Feedback{
			SwapID:     swaps[d.swap-1].ID,
			ReviewerID: users[d.reviewer-1].ID,
			ReviewedID: users[d.reviewed-1].ID,
			Rating:     d.rating,
			Comment:    d.comment,
		}
		if err := db.Create(f).Error; err != nil {
			return fmt.Errorf("seed feedback %d: %w", i+1, err)
		}
	}

	if opts.RandomUsers > 0 {
		factory := NewFactory(db)
		for i := 0; i < opts.RandomUsers; i++ {
			if _, err := factory.CreateUser(string(hash)); err != nil {
				return err
			}
		}
	}

	log.Printf("seeded %d users, %d swaps, %d feedback entries (+%d random users)",
		len(users), len(swaps), len(demoFeedbackEntries), opts.RandomUsers)
	return nil
}

func wipe(db *gorm.DB) error {
	// Child tables first so FK constraints never fire.
	for _, model := range []any{&models.Feedback{}, &models.SwapRequest{}, &models.User{}} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().Delete(model).Error; err != nil {
			return fmt.Errorf("wipe: %w", err)
		}
	}
	return nil
}
