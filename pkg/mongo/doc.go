// Package mongo connects to MongoDB with go.mongodb.org/mongo-driver/v2.
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	db, err := mongo.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer db.Client().Disconnect(context.Background())
//
//	store, err := history.NewMongoStore(ctx, db, cfg.HistoryCollection)
package mongo
