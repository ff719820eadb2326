package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/vanyanv/restaurant-dashboard/internal/db"
)

// Demo data generator. Creates an owner, three stores, two managers and a
// month of daily reports so the dashboard has something to show.
func main() {
	if err := db.Init("dashboard.db"); err != nil {
		log.Fatal("database init failed:", err)
	}

	var count int64
	db.DB.Model(&db.User{}).Count(&count)
	if count > 0 {
		fmt.Println("users already exist, skipping seed")
		return
	}

	owner := createUser("Demo Owner", "owner@example.com", "owner123", db.RoleOwner)
	managers := []db.User{
		createUser("Maria Lopez", "maria@example.com", "manager123", db.RoleManager),
		createUser("James Chen", "james@example.com", "manager123", db.RoleManager),
	}

	stores := []db.Store{
		{Name: "Downtown Grill", Address: "101 Main St, Fresno, CA", Phone: "(559) 555-0101", Status: db.StatusActive, OwnerID: owner.ID},
		{Name: "Westside Tacos", Address: "88 Olive Ave, Fresno, CA", Phone: "(559) 555-0188", Status: db.StatusActive, OwnerID: owner.ID},
		{Name: "Riverpark Diner", Address: "42 Blackstone Ave, Fresno, CA", Phone: "(559) 555-0142", Status: db.StatusActive, OwnerID: owner.ID},
	}
	for i := range stores {
		if err := db.DB.Create(&stores[i]).Error; err != nil {
			log.Fatal("create store failed:", err)
		}
	}

	for i := range stores {
		assignment := db.StoreManager{
			StoreID:   stores[i].ID,
			ManagerID: managers[i%len(managers)].ID,
			Status:    db.StatusActive,
		}
		if err := db.DB.Create(&assignment).Error; err != nil {
			log.Fatal("assign manager failed:", err)
		}
	}

	rng := rand.New(rand.NewSource(42))
	today := db.DateOnly(time.Now())
	reportCount := 0
	for dayOffset := 30; dayOffset >= 1; dayOffset-- {
		date := today.AddDate(0, 0, -dayOffset)
		for i := range stores {
			for _, shift := range []db.Shift{db.ShiftMorning, db.ShiftEvening} {
				// Leave the occasional shift unreported so the status grid
				// and alerts have gaps to show.
				if rng.Intn(10) == 0 {
					continue
				}
				createReport(rng, &stores[i], &managers[i%len(managers)], date, shift)
				reportCount++
			}
		}
	}

	fmt.Println("demo data created")
	fmt.Println("owner:    owner@example.com / owner123")
	fmt.Println("managers: maria@example.com, james@example.com / manager123")
	fmt.Printf("reports:  %d over 30 days\n", reportCount)
}

func createUser(name, email, password string, role db.Role) db.User {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("hash password failed:", err)
	}
	user := db.User{Name: name, Email: email, Password: string(hashed), Role: role}
	if err := db.DB.Create(&user).Error; err != nil {
		log.Fatal("create user failed:", err)
	}
	return user
}

func createReport(rng *rand.Rand, store *db.Store, manager *db.User, date time.Time, shift db.Shift) {
	cash := decimal.NewFromInt(int64(300 + rng.Intn(500)))
	card := decimal.NewFromInt(int64(500 + rng.Intn(900)))
	starting := decimal.NewFromInt(200)

	report := db.DailyReport{
		StoreID:              store.ID,
		ManagerID:            manager.ID,
		Date:                 date,
		Shift:                shift,
		StartingAmount:       starting,
		EndingAmount:         starting.Add(cash).Sub(decimal.NewFromInt(int64(rng.Intn(20)))),
		TotalSales:           cash.Add(card),
		CashSales:            cash,
		CardSales:            card,
		TipCount:             decimal.NewFromInt(int64(40 + rng.Intn(80))),
		CashTips:             decimal.NewFromInt(int64(20 + rng.Intn(40))),
		MorningPrepCompleted: 60 + rng.Intn(41),
		EveningPrepCompleted: 60 + rng.Intn(41),
		PrepMeat:             rng.Intn(10) > 1,
		PrepSauce:            rng.Intn(10) > 1,
		PrepOnionsSliced:     rng.Intn(10) > 2,
		PrepOnionsDiced:      rng.Intn(10) > 2,
		PrepTomatoesSliced:   rng.Intn(10) > 2,
		PrepLettuce:          rng.Intn(10) > 1,
		CustomerCount:        80 + rng.Intn(120),
		Notes:                "",
	}
	if err := db.DB.Create(&report).Error; err != nil {
		log.Fatal("create report failed:", err)
	}
}
