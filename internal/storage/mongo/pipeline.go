package mongo

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

// Вспомогательные выражения для pipeline-апдейтов: список лайков/жалоб
// и производный счётчик меняются в одной атомарной операции над документом.

func ifNullArr(field string) bson.D {
	return bson.D{{Key: "$ifNull", Value: bson.A{field, bson.A{}}}}
}

// containsUser — выражение "userID уже есть в <list>.user_id".
func containsUser(list, userID string) bson.D {
	return bson.D{{Key: "$in", Value: bson.A{userID, ifNullArr(list + ".user_id")}}}
}

// addLikePipeline добавляет лайк, если его ещё нет, и пересчитывает countField как $size(likes).
func addLikePipeline(userID string, at time.Time, countField string, touch bool) mongodriver.Pipeline {
	like := bson.D{{Key: "user_id", Value: userID}, {Key: "created_at", Value: toMS(at)}}

	set := bson.D{{Key: "likes", Value: bson.D{{Key: "$cond", Value: bson.A{
		containsUser("$likes", userID),
		"$likes",
		bson.D{{Key: "$concatArrays", Value: bson.A{ifNullArr("$likes"), bson.D{{Key: "$literal", Value: bson.A{like}}}}}},
	}}}}}

	return likesPipeline(set, countField, at, touch)
}

// removeLikePipeline убирает лайк пользователя и пересчитывает countField.
func removeLikePipeline(userID string, at time.Time, countField string, touch bool) mongodriver.Pipeline {
	set := bson.D{{Key: "likes", Value: bson.D{{Key: "$filter", Value: bson.D{
		{Key: "input", Value: ifNullArr("$likes")},
		{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$this.user_id", userID}}}},
	}}}}}

	return likesPipeline(set, countField, at, touch)
}

func likesPipeline(set bson.D, countField string, at time.Time, touch bool) mongodriver.Pipeline {
	recount := bson.D{{Key: countField, Value: bson.D{{Key: "$size", Value: "$likes"}}}}
	if touch {
		recount = append(recount, bson.E{Key: "updated_at", Value: toMS(at)})
	}

	return mongodriver.Pipeline{
		{{Key: "$set", Value: set}},
		{{Key: "$set", Value: recount}},
	}
}

// reportPipeline добавляет жалобу (одна на пользователя), причину — во множество флагов,
// пересчитывает stats.reports_count и при достижении порога переводит approved -> pending.
func reportPipeline(userID, reason string, at time.Time, threshold int32) mongodriver.Pipeline {
	report := bson.D{
		{Key: "user_id", Value: userID},
		{Key: "reason", Value: reason},
		{Key: "created_at", Value: toMS(at)},
	}

	reported := containsUser("$reports", userID)
	flags := ifNullArr("$moderation.flags")

	stage1 := bson.D{
		{Key: "reports", Value: bson.D{{Key: "$cond", Value: bson.A{
			reported,
			"$reports",
			bson.D{{Key: "$concatArrays", Value: bson.A{ifNullArr("$reports"), bson.D{{Key: "$literal", Value: bson.A{report}}}}}},
		}}}},
		{Key: "moderation.flags", Value: bson.D{{Key: "$cond", Value: bson.A{
			bson.D{{Key: "$or", Value: bson.A{reported, bson.D{{Key: "$in", Value: bson.A{reason, flags}}}}}},
			flags,
			bson.D{{Key: "$concatArrays", Value: bson.A{flags, bson.A{reason}}}},
		}}}},
	}

	stage2 := bson.D{{Key: "stats.reports_count", Value: bson.D{{Key: "$size", Value: "$reports"}}}}

	stage3 := bson.D{
		{Key: "moderation.status", Value: bson.D{{Key: "$cond", Value: bson.A{
			bson.D{{Key: "$and", Value: bson.A{
				bson.D{{Key: "$eq", Value: bson.A{"$moderation.status", "approved"}}},
				bson.D{{Key: "$gte", Value: bson.A{"$stats.reports_count", threshold}}},
			}}},
			"pending",
			"$moderation.status",
		}}}},
		{Key: "updated_at", Value: toMS(at)},
	}

	return mongodriver.Pipeline{
		{{Key: "$set", Value: stage1}},
		{{Key: "$set", Value: stage2}},
		{{Key: "$set", Value: stage3}},
	}
}

// clampedIncPipeline прибавляет delta к полю, не опуская его ниже нуля.
func clampedIncPipeline(field string, delta int64, at time.Time) mongodriver.Pipeline {
	return mongodriver.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: field, Value: bson.D{{Key: "$max", Value: bson.A{
				0,
				bson.D{{Key: "$add", Value: bson.A{bson.D{{Key: "$ifNull", Value: bson.A{"$" + field, 0}}}, delta}}},
			}}}},
			{Key: "updated_at", Value: toMS(at)},
		}}},
	}
}

// subtreeRegex совпадает с path всех потомков узла с префиксом subtreePath
// и только с ними: "/a/b" не совпадает с "/a/bc".
func subtreeRegex(subtreePath string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(subtreePath) + "(/|$)"}
}
