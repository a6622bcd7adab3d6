package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sngm3741/delight-spot/api/internal/auth"
	"github.com/sngm3741/delight-spot/api/internal/config"
	mongodoc "github.com/sngm3741/delight-spot/api/internal/infrastructure/mongo"
	"github.com/sngm3741/delight-spot/api/internal/public/domain"
	"github.com/sngm3741/delight-spot/api/internal/server"
	"github.com/sngm3741/delight-spot/api/internal/util"
)

type seedOptions struct {
	userCount       int
	storeCount      int
	reviewCount     int
	password        string
	dropCollections bool
	randomSeed      int64
}

var (
	storePrefixes = []string{"Delight", "Moon", "Hanok", "Sunny", "Maple", "Harbor", "Olive", "Cloud"}
	storeSuffixes = map[domain.MenuKind][]string{
		domain.MenuKindCafe: {"Cafe", "Coffee", "Roasters", "Bakery"},
		domain.MenuKindFood: {"Kitchen", "Bistro", "Noodle House", "Grill"},
	}
	detailKinds = []domain.DetailKind{domain.DetailKorean, domain.DetailJapanese, domain.DetailChinese, domain.DetailWestern, domain.DetailOther}
	cities      = []string{"Seoul", "Busan", "Incheon", "Daegu", "Jeju"}
	sellItems   = []string{"Americano", "Latte", "Bibimbap", "Ramen", "Dumplings", "Pasta", "Cheesecake", "Bingsu"}
	comments    = []string{"Great place.", "Would come again.", "Friendly staff.", "A bit crowded.", "Lovely view."}
	notices     = []string{"Welcome to Delight Spot", "Review guidelines", "Holiday hours"}
)

func main() {
	opts := parseFlags()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}
	logger := util.InitLogger(cfg.LogLevel)
	if err := run(context.Background(), cfg, opts, logger); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.IntVar(&opts.userCount, "users", 5, "number of users to create")
	flag.IntVar(&opts.storeCount, "stores", 24, "number of stores to create")
	flag.IntVar(&opts.reviewCount, "reviews", 80, "number of reviews to create")
	flag.StringVar(&opts.password, "password", "delight1234", "password for every seeded user")
	flag.BoolVar(&opts.dropCollections, "drop", true, "drop collections before seeding")
	flag.Int64Var(&opts.randomSeed, "seed", 20240101, "random seed")
	flag.Parse()
	if opts.userCount < 1 || opts.storeCount < 1 {
		fmt.Fprintln(os.Stderr, "users and stores must be at least 1")
		os.Exit(2)
	}
	return opts
}

func run(ctx context.Context, cfg config.Config, opts seedOptions, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(cfg.MongoDatabase)
	names := server.MongoCollections(cfg.Collections)
	if opts.dropCollections {
		for _, name := range []string{names.Stores, names.Reviews, names.Users, names.SellLists, names.Bookings, names.Groups, names.Notices} {
			if err := db.Collection(name).Drop(ctx); err != nil {
				logger.Warn("drop collection failed", "collection", name, "error", err)
			}
		}
	}
	if err := mongodoc.EnsureIndexes(ctx, db, names); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	repos := server.NewMongoRepositories(db, names)
	rng := rand.New(rand.NewSource(opts.randomSeed))
	hash, err := auth.NewBcryptHasher().Hash(opts.password)
	if err != nil {
		return err
	}

	users := make([]domain.User, 0, opts.userCount)
	for i := 0; i < opts.userCount; i++ {
		now := time.Now().UTC()
		user := &domain.User{
			Username:     fmt.Sprintf("user%02d", i+1),
			Name:         fmt.Sprintf("User %d", i+1),
			Email:        fmt.Sprintf("user%02d@example.com", i+1),
			PasswordHash: hash,
			IsHost:       i == 0,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := repos.Users.Create(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		if _, err := repos.Bookings.EnsureForUser(ctx, user.ID); err != nil {
			return fmt.Errorf("ensure booking: %w", err)
		}
		users = append(users, *user)
	}

	sellIDs := make([]string, 0, len(sellItems))
	for _, name := range sellItems {
		now := time.Now().UTC()
		item := &domain.SellList{Name: name, Description: name + " of the house", CreatedAt: now, UpdatedAt: now}
		if err := repos.SellLists.Create(ctx, item); err != nil {
			return fmt.Errorf("create sell list: %w", err)
		}
		sellIDs = append(sellIDs, item.ID)
	}

	storeIDs := make([]string, 0, opts.storeCount)
	for i := 0; i < opts.storeCount; i++ {
		kind := domain.MenuKindCafe
		if rng.Intn(2) == 0 {
			kind = domain.MenuKindFood
		}
		suffixes := storeSuffixes[kind]
		owner := users[rng.Intn(len(users))]
		now := time.Now().UTC()
		store := &domain.Store{
			Name:        fmt.Sprintf("%s %s", storePrefixes[rng.Intn(len(storePrefixes))], suffixes[rng.Intn(len(suffixes))]),
			Description: "Seeded store",
			KindMenu:    kind,
			KindDetail:  detailKinds[rng.Intn(len(detailKinds))],
			PetFriendly: rng.Intn(3) == 0,
			City:        cities[rng.Intn(len(cities))],
			OwnerID:     owner.ID,
			SellListIDs: pick(rng, sellIDs, 1+rng.Intn(3)),
			PhotoURLs:   []string{fmt.Sprintf("https://picsum.photos/seed/delight-%d/640/480", i)},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := repos.Stores.Create(ctx, store); err != nil {
			return fmt.Errorf("create store: %w", err)
		}
		storeIDs = append(storeIDs, store.ID)
	}

	for i := 0; i < opts.reviewCount; i++ {
		now := time.Now().UTC()
		review := &domain.Review{
			UserID:      users[rng.Intn(len(users))].ID,
			StoreID:     storeIDs[rng.Intn(len(storeIDs))],
			Taste:       rng.Intn(domain.MaxSubRating + 1),
			Atmosphere:  rng.Intn(domain.MaxSubRating + 1),
			Kindness:    rng.Intn(domain.MaxSubRating + 1),
			Cleanliness: rng.Intn(domain.MaxSubRating + 1),
			Parking:     rng.Intn(domain.MaxSubRating + 1),
			Restroom:    rng.Intn(domain.MaxSubRating + 1),
			Description: comments[rng.Intn(len(comments))],
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := repos.Reviews.Create(ctx, review); err != nil {
			return fmt.Errorf("create review: %w", err)
		}
	}

	for _, name := range notices {
		now := time.Now().UTC()
		notice := &domain.Notice{Name: name, Description: name + ".", CreatedAt: now, UpdatedAt: now}
		if err := repos.Notices.Create(ctx, notice); err != nil {
			return fmt.Errorf("create notice: %w", err)
		}
	}

	logger.Info("seed complete",
		"users", len(users),
		"sell_lists", len(sellIDs),
		"stores", len(storeIDs),
		"reviews", opts.reviewCount,
		"notices", len(notices),
		"database", cfg.MongoDatabase,
	)
	return nil
}

func pick(rng *rand.Rand, source []string, count int) []string {
	if count > len(source) {
		count = len(source)
	}
	out := make([]string, 0, count)
	for _, idx := range rng.Perm(len(source))[:count] {
		out = append(out, source[idx])
	}
	return out
}
