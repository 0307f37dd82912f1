package db

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"clauseguard/models"
)

var MongoClient *mongo.Client
var MongoDatabase *mongo.Database
var AnalysesCollection *mongo.Collection

var log = zap.NewNop().Sugar()

// SetLogger installs the shared logger for the db package.
func SetLogger(logger *zap.SugaredLogger) {
	if logger != nil {
		log = logger
	}
}

// Connected reports whether analysis history storage is available. The
// server runs without it; history endpoints degrade instead of failing
// startup.
func Connected() bool {
	return AnalysesCollection != nil
}

// extractDBName parses the database name from the URI, defaulting to
// "clauseguard".
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "clauseguard"
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:]
	}
	return "clauseguard"
}

// ConnectMongoDB establishes a connection to MongoDB using the provided URI.
func ConnectMongoDB(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection with a ping
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoClient = client
	dbName := extractDBName(uri)
	log.Infow("using database", "name", dbName)

	MongoDatabase = client.Database(dbName)
	AnalysesCollection = MongoDatabase.Collection("analyses")
	return nil
}

// SaveAnalysis persists a completed analysis record.
func SaveAnalysis(record models.AnalysisRecord) error {
	_, err := AnalysesCollection.InsertOne(context.Background(), record)
	if err != nil {
		log.Errorw("failed to save analysis", "id", record.ID, "error", err)
		return err
	}
	return nil
}

// GetAnalysis retrieves one analysis record by id.
func GetAnalysis(id string) (*models.AnalysisRecord, error) {
	var record models.AnalysisRecord
	err := AnalysesCollection.FindOne(context.Background(), bson.M{"_id": id}).Decode(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListAnalyses returns the most recent analysis records, newest first.
func ListAnalyses(limit int64) ([]models.AnalysisRecord, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit)
	cursor, err := AnalysesCollection.Find(context.Background(), bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(context.Background())

	records := make([]models.AnalysisRecord, 0)
	if err := cursor.All(context.Background(), &records); err != nil {
		return nil, err
	}
	return records, nil
}
