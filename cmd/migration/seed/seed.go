package seed

import (
	"fmt"

	"matchly/config"
	. "matchly/internal/models"
	"matchly/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	seedPassword   = "password"
	popularLikers  = 55
	batchSize      = 100
	baseLatitude   = -6.2088
	baseLongitude  = 106.8456
	coordinateStep = 0.0125
)

var demoUsers = []struct {
	Name  string
	Age   int
	Email string
}{
	{Name: "Test User", Age: 27, Email: "test@example.com"},
	{Name: "Nadia Putri", Age: 24, Email: "nadia@example.com"},
	{Name: "Raka Pratama", Age: 29, Email: "raka@example.com"},
	{Name: "Sinta Dewi", Age: 26, Email: "sinta@example.com"},
	{Name: "Bima Saputra", Age: 31, Email: "bima@example.com"},
	{Name: "Laras Ayu", Age: 23, Email: "laras@example.com"},
}

func coordinate(base float64, index int) decimal.NullDecimal {
	value := decimal.NewFromFloat(base).Add(
		decimal.NewFromFloat(coordinateStep).Mul(decimal.NewFromInt(int64(index % 12))),
	)
	return decimal.NewNullDecimal(value.Round(8))
}

func pictures(index int) []Picture {
	return []Picture{
		{PicturePath: fmt.Sprintf("pictures/%d/1.jpg", index), SortOrder: 0, IsPrimary: true},
		{PicturePath: fmt.Sprintf("pictures/%d/2.jpg", index), SortOrder: 1},
	}
}

// Seed creates a handful of demo users with pictures, plus one user liked by
// enough others to be picked up by the next popularity scan.
func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	hash, err := services.NewAuthService(config).HashPassword(seedPassword)
	if err != nil {
		return log.Err("failed to hash seed password", err)
	}

	users := make([]User, 0, len(demoUsers)+popularLikers+1)
	for i, demo := range demoUsers {
		users = append(users, User{
			Name:      demo.Name,
			Age:       demo.Age,
			Email:     demo.Email,
			Password:  hash,
			Latitude:  coordinate(baseLatitude, i),
			Longitude: coordinate(baseLongitude, i),
			Pictures:  pictures(i + 1),
		})
	}

	users = append(users, User{
		Name:      "Popular Paula",
		Age:       28,
		Email:     "popular@example.com",
		Password:  hash,
		Latitude:  coordinate(baseLatitude, 0),
		Longitude: coordinate(baseLongitude, 0),
		Pictures:  pictures(len(demoUsers) + 1),
	})

	for i := range popularLikers {
		users = append(users, User{
			Name:     fmt.Sprintf("Admirer %02d", i+1),
			Age:      20 + i%15,
			Email:    fmt.Sprintf("admirer%02d@example.com", i+1),
			Password: hash,
		})
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(&users, batchSize).Error; err != nil {
			return log.Err("failed to create users", err)
		}

		popular := users[len(demoUsers)]
		swipes := make([]Swipe, 0, popularLikers+len(demoUsers))
		for _, admirer := range users[len(demoUsers)+1:] {
			swipes = append(swipes, Swipe{
				SwiperID: admirer.ID,
				SwipedID: popular.ID,
				Action:   SwipeActionLike,
			})
		}

		// the test user has already seen two profiles
		swipes = append(swipes,
			Swipe{SwiperID: users[0].ID, SwipedID: users[1].ID, Action: SwipeActionLike},
			Swipe{SwiperID: users[0].ID, SwipedID: users[2].ID, Action: SwipeActionNope},
		)

		if err := tx.CreateInBatches(&swipes, batchSize).Error; err != nil {
			return log.Err("failed to create swipes", err)
		}

		log.Info(
			"Seeded development data",
			"users", len(users),
			"swipes", len(swipes),
			"popularUserID", popular.ID,
		)
		return nil
	})
}
