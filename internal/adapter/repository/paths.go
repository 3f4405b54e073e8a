package repository

import "fmt"

// Document layout in the store:
//
//	users/{uid}/wordbooks/{id}
//	users/{uid}/wordbooks/{id}/words/{id}
//	users/{uid}/posTags/{id}

func wordbooksCollection(userID string) string {
	return fmt.Sprintf("users/%s/wordbooks", userID)
}

func wordbookPath(userID, id string) string {
	return fmt.Sprintf("users/%s/wordbooks/%s", userID, id)
}

func wordsCollection(userID, wordbookID string) string {
	return fmt.Sprintf("users/%s/wordbooks/%s/words", userID, wordbookID)
}

func wordPath(userID, wordbookID, id string) string {
	return fmt.Sprintf("users/%s/wordbooks/%s/words/%s", userID, wordbookID, id)
}

func posTagsCollection(userID string) string {
	return fmt.Sprintf("users/%s/posTags", userID)
}

func posTagPath(userID, id string) string {
	return fmt.Sprintf("users/%s/posTags/%s", userID, id)
}
