package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/datatypes"

	"emptrack_backend/internals/features/attendance/attendance_records/model"
)

const mongoCollection = "attendance_records"

// MongoAttendanceStore keeps attendance in a MongoDB collection with the
// same (user_id, date) unique index as the Postgres table.
type MongoAttendanceStore struct {
	coll *mongo.Collection
}

type attendanceDoc struct {
	ID        string     `bson:"_id"`
	UserID    string     `bson:"user_id"`
	Date      time.Time  `bson:"date"`
	CheckIn   *time.Time `bson:"check_in"`
	CheckOut  *time.Time `bson:"check_out"`
	Status    string     `bson:"status"`
	Notes     *string    `bson:"notes"`
	CreatedAt time.Time  `bson:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at"`
}

func NewMongoAttendanceStore(ctx context.Context, db *mongo.Database) (*MongoAttendanceStore, error) {
	coll := db.Collection(mongoCollection)
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("uq_attendance_user_date").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "date", Value: -1}},
			Options: options.Index().SetName("idx_attendance_records_date"),
		},
	})
	if err != nil {
		return nil, err
	}
	return &MongoAttendanceStore{coll: coll}, nil
}

func (s *MongoAttendanceStore) FindForDay(ctx context.Context, userID uuid.UUID, day time.Time) (*model.AttendanceRecordModel, error) {
	return s.findOne(ctx, bson.M{"user_id": userID.String(), "date": dayKey(day)})
}

func (s *MongoAttendanceStore) FindOpenForDay(ctx context.Context, userID uuid.UUID, day time.Time) (*model.AttendanceRecordModel, error) {
	// nil matches both null and a missing field
	return s.findOne(ctx, bson.M{"user_id": userID.String(), "date": dayKey(day), "check_out": nil})
}

func (s *MongoAttendanceStore) FindByID(ctx context.Context, id uuid.UUID) (*model.AttendanceRecordModel, error) {
	return s.findOne(ctx, bson.M{"_id": id.String()})
}

func (s *MongoAttendanceStore) Create(ctx context.Context, rec *model.AttendanceRecordModel) error {
	now := time.Now().UTC()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.CreatedAt, rec.UpdatedAt = now, now
	if _, err := s.coll.InsertOne(ctx, toDoc(rec)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *MongoAttendanceStore) SaveCheckOut(ctx context.Context, rec *model.AttendanceRecordModel) error {
	rec.UpdatedAt = time.Now().UTC()
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": rec.ID.String(), "check_out": nil},
		bson.M{"$set": bson.M{"check_out": rec.CheckOut, "notes": rec.Notes, "updated_at": rec.UpdatedAt}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoAttendanceStore) Update(ctx context.Context, rec *model.AttendanceRecordModel) error {
	rec.UpdatedAt = time.Now().UTC()
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": rec.ID.String()},
		bson.M{"$set": bson.M{
			"status":     rec.Status,
			"notes":      rec.Notes,
			"check_in":   rec.CheckIn,
			"check_out":  rec.CheckOut,
			"updated_at": rec.UpdatedAt,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoAttendanceStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.AttendanceRecordModel, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return s.find(ctx, bson.M{"user_id": userID.String()}, opts)
}

func (s *MongoAttendanceStore) ListRange(ctx context.Context, f ListFilter) ([]model.AttendanceRecordModel, int64, error) {
	filter := bson.M{}
	if f.UserID != nil {
		filter["user_id"] = f.UserID.String()
	}
	dateCond := bson.M{}
	if !f.From.IsZero() {
		dateCond["$gte"] = dayKey(f.From)
	}
	if !f.To.IsZero() {
		dateCond["$lte"] = dayKey(f.To)
	}
	if len(dateCond) > 0 {
		filter["date"] = dateCond
	}

	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit)).SetSkip(int64(f.Offset))
	}
	rows, err := s.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *MongoAttendanceStore) findOne(ctx context.Context, filter bson.M) (*model.AttendanceRecordModel, error) {
	var doc attendanceDoc
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	rec := fromDoc(doc)
	return &rec, nil
}

func (s *MongoAttendanceStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]model.AttendanceRecordModel, error) {
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []attendanceDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]model.AttendanceRecordModel, 0, len(docs))
	for _, d := range docs {
		out = append(out, fromDoc(d))
	}
	return out, nil
}

func toDoc(rec *model.AttendanceRecordModel) attendanceDoc {
	return attendanceDoc{
		ID:        rec.ID.String(),
		UserID:    rec.UserID.String(),
		Date:      dayKey(rec.Day()),
		CheckIn:   rec.CheckIn,
		CheckOut:  rec.CheckOut,
		Status:    rec.Status,
		Notes:     rec.Notes,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func fromDoc(d attendanceDoc) model.AttendanceRecordModel {
	id, _ := uuid.Parse(d.ID)
	userID, _ := uuid.Parse(d.UserID)
	return model.AttendanceRecordModel{
		ID:        id,
		UserID:    userID,
		Date:      datatypes.Date(d.Date.UTC()),
		CheckIn:   d.CheckIn,
		CheckOut:  d.CheckOut,
		Status:    d.Status,
		Notes:     d.Notes,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
