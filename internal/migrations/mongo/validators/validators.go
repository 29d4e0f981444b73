package validators

import "go.mongodb.org/mongo-driver/bson"

// OrderValidator enforces the persisted booking shape. Status stays an
// open enum of the three lifecycle values even though rejected orders are
// deleted on resolution.
var OrderValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"companyID", "customerID", "venueID", "eventID", "startAt", "endAt", "status", "createdAt"},
		"properties": bson.M{
			"companyID":  bson.M{"bsonType": "string"},
			"customerID": bson.M{"bsonType": "string"},
			"venueID":    bson.M{"bsonType": "string"},
			"eventID":    bson.M{"bsonType": "string"},
			"startAt":    bson.M{"bsonType": "date"},
			"endAt":      bson.M{"bsonType": "date"},
			"note":       bson.M{"bsonType": "string"},
			"status": bson.M{
				"enum": []string{"pending", "accepted", "rejected"},
			},
			"createdAt": bson.M{"bsonType": "date"},
		},
	},
}

var NotificationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"to", "message", "date", "read"},
		"properties": bson.M{
			"to":      bson.M{"bsonType": "string"},
			"message": bson.M{"bsonType": "string"},
			"date":    bson.M{"bsonType": "date"},
			"read":    bson.M{"bsonType": "bool"},
		},
	},
}

var VenueLockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "expires_at", "created_at"},
		"properties": bson.M{
			"_id":        bson.M{"bsonType": "string"},
			"expires_at": bson.M{"bsonType": "date"},
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}
