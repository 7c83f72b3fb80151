package roadmap

import (
	"time"

	"github.com/heartmarshall/kairon-web/internal/domain"
)

// DefaultStartDate is the start date of a fresh roadmap.
var DefaultStartDate = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// Default returns the seeded two-day roadmap.
func Default() *domain.Roadmap {
	return &domain.Roadmap{
		StartDate: DefaultStartDate,
		Days: []domain.RoadmapDay{
			{
				Day:   1,
				Topic: "Introduction & Time Complexity",
				Goal:  "Hiểu Big-O, Big-Theta, Big-Omega và phân tích thời gian/không gian.",
				Tasks: []string{
					"Học lý thuyết Time Complexity (O(1), O(n), O(n log n), O(n^2))",
					"Phân tích độ phức tạp của một số thuật toán đơn giản",
					"Làm 2 bài về Big-O",
				},
				Resources: []string{
					"https://www.geeksforgeeks.org/analysis-of-algorithms-big-o-notation/",
					"https://www.youtube.com/watch?v=D6xkbGLQesk",
				},
			},
			{
				Day:   2,
				Topic: "Array Basics",
				Goal:  "Nắm thao tác cơ bản với mảng và tư duy hai con trỏ.",
				Tasks: []string{
					"Ôn lại thao tác array, two-pointer",
					"Làm 3 bài Easy về Arrays",
				},
				Resources: []string{
					"https://leetcode.com/explore/learn/card/fun-with-arrays/",
					"https://www.youtube.com/watch?v=KlIqIaLRwLU",
				},
			},
		},
		Completed: map[int]bool{},
	}
}
