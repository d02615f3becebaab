package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"ecolakbay-service/internal/feed"
)

var baseURL = getenv("SEED_BASE_URL", "http://localhost:8080")

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

type account struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

func main() {
	gofakeit.Seed(time.Now().UnixNano())

	// Register a handful of travelers.
	accounts := make([]account, 0, 4)
	for i := 0; i < 4; i++ {
		acc := register(gofakeit.Email(), "123456", gofakeit.Name())
		accounts = append(accounts, acc)
	}

	// Community content: posts, likes, comments over the raw API.
	var postIDs []uint64
	categories := []string{"eco-tips", "trip-report", "destinations", "events"}
	for _, acc := range accounts {
		for i := 0; i < 2; i++ {
			id := createPost(acc, gofakeit.Sentence(6), gofakeit.Paragraph(1, 3, 10, " "), categories[gofakeit.Number(0, len(categories)-1)])
			postIDs = append(postIDs, id)
		}
	}
	for _, acc := range accounts {
		likePost(acc, postIDs[gofakeit.Number(0, len(postIDs)-1)])
		commentPost(acc, postIDs[gofakeit.Number(0, len(postIDs)-1)], gofakeit.Sentence(8))
	}

	// Destinations and a carbon estimate.
	submitDestination(accounts[0])
	estimateCarbon()

	// Drive a full feed-client session the way the page would.
	runFeedSession(accounts[0])
}

func register(email, password, name string) account {
	var acc account
	postJSON("/auth/register", "", map[string]string{
		"email": email, "password": password, "display_name": name,
	}, &acc)
	log.Printf("registered %s as %s", email, acc.UserID)
	return acc
}

func createPost(acc account, title, body, category string) uint64 {
	var out struct {
		ID uint64 `json:"id"`
	}
	postJSON("/posts", acc.Token, map[string]string{
		"title": title, "body": body, "category": category,
	}, &out)
	log.Printf("created post %d", out.ID)
	return out.ID
}

func likePost(acc account, postID uint64) {
	postJSON(fmt.Sprintf("/posts/%d/like", postID), acc.Token, nil, nil)
}

func commentPost(acc account, postID uint64, text string) {
	postJSON(fmt.Sprintf("/posts/%d/comments", postID), acc.Token, map[string]string{"text": text}, nil)
}

func submitDestination(acc account) {
	postJSON("/destinations", acc.Token, map[string]any{
		"name":        gofakeit.City() + " Eco Park",
		"description": gofakeit.Paragraph(1, 2, 12, " "),
		"category":    "nature",
		"town":        gofakeit.City(),
		"latitude":    gofakeit.Latitude(),
		"longitude":   gofakeit.Longitude(),
	}, nil)
	log.Println("submitted destination")
}

func estimateCarbon() {
	var out struct {
		EmissionKG float64 `json:"emission_kg"`
	}
	postJSON("/carbon/estimate", "", map[string]any{
		"mode": "jeepney", "distance_km": gofakeit.Float64Range(5, 120), "passengers": 1,
	}, &out)
	log.Printf("carbon estimate: %.3f kg", out.EmissionKG)
}

func runFeedSession(acc account) {
	ctx := context.Background()
	gw := feed.NewClient(baseURL, acc.Token)
	store := feed.NewStore(gw, acc.UserID)

	if err := store.LoadFeed(ctx); err != nil {
		log.Fatalf("load feed: %v", err)
	}
	posts := store.Feed()
	log.Printf("feed loaded with %d posts", len(posts))
	if len(posts) == 0 {
		return
	}

	first := posts[0].ID
	if err := store.ToggleLike(ctx, first); err != nil {
		log.Printf("toggle like: %v", err)
	}
	if _, err := store.ExpandComments(ctx, first); err != nil {
		log.Printf("expand comments: %v", err)
	}
	if err := store.SubmitComment(ctx, first, gofakeit.Sentence(10)); err != nil {
		log.Printf("submit comment: %v", err)
	}

	refreshed := store.Feed()[0]
	log.Printf("post %s: liked=%v likes=%d comments=%d",
		refreshed.ID, refreshed.UserLiked, refreshed.LikeCount, refreshed.CommentCount)
}

func postJSON(path, token string, body, out any) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			log.Fatalf("encode %s: %v", path, err)
		}
	}
	req, err := http.NewRequest(http.MethodPost, baseURL+path, &buf)
	if err != nil {
		log.Fatalf("request %s: %v", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("call %s: %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		log.Fatalf("call %s: status %d", path, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			log.Fatalf("decode %s: %v", path, err)
		}
	}
}
