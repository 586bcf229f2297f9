package main

import (
	"context"
	"time"

	"github.com/atinyakov/HabitTracker/internal/config"
	"github.com/atinyakov/HabitTracker/internal/db"
	"github.com/atinyakov/HabitTracker/internal/models"
	"github.com/atinyakov/HabitTracker/internal/repository"
	"github.com/atinyakov/HabitTracker/internal/service"
)

// stores bundles the repositories of one backend.
type stores struct {
	users       service.UserRepository
	tasks       service.Collection[models.Task]
	activities  service.Collection[models.Activity]
	meals       service.Collection[models.Meal]
	ingredients service.IngredientStore
	close       func()
}

// openStores connects to the backend selected by options.Store.
func openStores(ctx context.Context, options *config.Options) (*stores, error) {
	if options.Store == config.StoreMongo {
		client, mdb, err := db.InitMongo(ctx, options.MongoURI, options.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return &stores{
			users:       repository.NewMongoUserRepository(mdb),
			tasks:       repository.NewMongoCollection[models.Task](mdb, db.TasksTable),
			activities:  repository.NewMongoCollection[models.Activity](mdb, db.ActivitiesTable),
			meals:       repository.NewMongoCollection[models.Meal](mdb, db.MealsTable),
			ingredients: repository.NewMongoIngredientRepository(mdb),
			close: func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = client.Disconnect(ctx)
			},
		}, nil
	}

	pg, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	return &stores{
		users:       repository.NewPostgresUserRepository(pg),
		tasks:       repository.NewPostgresCollection[models.Task](pg, db.TasksTable),
		activities:  repository.NewPostgresCollection[models.Activity](pg, db.ActivitiesTable),
		meals:       repository.NewPostgresCollection[models.Meal](pg, db.MealsTable),
		ingredients: repository.NewPostgresIngredientRepository(pg),
		close:       func() { _ = pg.Close() },
	}, nil
}
