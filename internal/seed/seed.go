// Package seed provides built-in demo data for development environments.
package seed

import (
	"fmt"
	"log"

	"agora/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// seedPassword is the shared password for all demo accounts.
const seedPassword = "password123"

// Seed populates the database with demo users, categories, tags, courses,
// posts and comments. It is idempotent: if any demo user already exists the
// run is skipped entirely.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", "admin@ntua.gr").Count(&count).Error; err != nil {
		return fmt.Errorf("seed precheck: %w", err)
	}
	if count > 0 {
		log.Println("seed: demo data already present, skipping")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		users, err := seedUsers(tx)
		if err != nil {
			return fmt.Errorf("seed users: %w", err)
		}

		categories, err := seedCategories(tx)
		if err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}

		tags, err := seedTags(tx)
		if err != nil {
			return fmt.Errorf("seed tags: %w", err)
		}

		if err := seedCourses(tx); err != nil {
			return fmt.Errorf("seed courses: %w", err)
		}

		if err := seedPosts(tx, users, categories, tags); err != nil {
			return fmt.Errorf("seed posts: %w", err)
		}

		log.Println("seed: demo data created")
		return nil
	})
}

func seedUsers(tx *gorm.DB) (map[string]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := []*models.User{
		{
			Email:      "admin@ntua.gr",
			Name:       "Admin User",
			Username:   "admin",
			Role:       models.RoleAdmin,
			Reputation: 10000,
			Bio:        "Forum administrator and moderator",
		},
		{
			Email:      "moderator@ntua.gr",
			Name:       "Maria Papadopoulos",
			Username:   "maria_mod",
			Role:       models.RoleModerator,
			Reputation: 5000,
			Bio:        "ECE student and forum moderator",
		},
		{
			Email:      "nikolas@ntua.gr",
			Name:       "Nikolas Neofytou",
			Username:   "nikolas_n",
			Role:       models.RoleUser,
			Reputation: 850,
			Bio:        "4th year ECE student, interested in algorithms and machine learning",
		},
		{
			Email:      "george@ntua.gr",
			Name:       "George Papadakis",
			Username:   "george_p",
			Role:       models.RoleUser,
			Reputation: 620,
			Bio:        "3rd year student, specializing in electronics and embedded systems",
		},
		{
			Email:      "elena@ntua.gr",
			Name:       "Elena Konstantinou",
			Username:   "elena_k",
			Role:       models.RoleUser,
			Reputation: 1250,
			Bio:        "ECE graduate student, TA for signals and systems",
		},
		{
			Email:      "dimitris@ntua.gr",
			Name:       "Dimitris Stavrou",
			Username:   "dimitris_s",
			Role:       models.RoleUser,
			Reputation: 340,
			Bio:        "2nd year student, loves circuit design",
		},
		{
			Email:      "anna@ntua.gr",
			Name:       "Anna Georgiou",
			Username:   "anna_g",
			Role:       models.RoleUser,
			Reputation: 490,
			Bio:        "Interested in computer networks and telecommunications",
		},
	}

	byUsername := make(map[string]*models.User, len(users))
	for _, u := range users {
		u.Password = string(hashed)
		if err := tx.Create(u).Error; err != nil {
			return nil, err
		}
		byUsername[u.Username] = u
	}
	return byUsername, nil
}

func seedCategories(tx *gorm.DB) (map[string]*models.Category, error) {
	categories := []*models.Category{
		{Name: "Algorithms & Data Structures", Slug: "algorithms", Description: "Questions about algorithms, complexity analysis, and data structures", Color: "#3B82F6", Icon: "code"},
		{Name: "Electronics & Circuits", Slug: "electronics", Description: "Circuit analysis, analog and digital electronics", Color: "#F59E0B", Icon: "cpu"},
		{Name: "Mathematics", Slug: "mathematics", Description: "Calculus, linear algebra, differential equations, and more", Color: "#8B5CF6", Icon: "calculator"},
		{Name: "Signal Processing", Slug: "signal-processing", Description: "Digital signal processing, Fourier transforms, filters", Color: "#10B981", Icon: "radio"},
		{Name: "Computer Networks", Slug: "networks", Description: "Network protocols, TCP/IP, routing, and telecommunications", Color: "#EC4899", Icon: "network"},
		{Name: "Embedded Systems", Slug: "embedded", Description: "Microcontrollers, Arduino, FPGA, and embedded programming", Color: "#EF4444", Icon: "microchip"},
		{Name: "General Discussion", Slug: "general", Description: "General topics, student life, career advice", Color: "#6B7280", Icon: "message-circle"},
	}

	bySlug := make(map[string]*models.Category, len(categories))
	for _, c := range categories {
		if err := tx.Create(c).Error; err != nil {
			return nil, err
		}
		bySlug[c.Slug] = c
	}
	return bySlug, nil
}

func seedTags(tx *gorm.DB) (map[string]*models.Tag, error) {
	tags := []*models.Tag{
		{Name: "homework-help", Slug: "homework-help", Description: "Help with homework assignments"},
		{Name: "python", Slug: "python", Description: "Python programming"},
		{Name: "c-cpp", Slug: "c-cpp", Description: "C/C++ programming"},
		{Name: "java", Slug: "java", Description: "Java programming"},
		{Name: "circuit-analysis", Slug: "circuit-analysis", Description: "Circuit analysis techniques"},
		{Name: "fourier", Slug: "fourier", Description: "Fourier transforms and analysis"},
		{Name: "tcp-ip", Slug: "tcp-ip", Description: "TCP/IP networking"},
		{Name: "arduino", Slug: "arduino", Description: "Arduino projects"},
		{Name: "exam-prep", Slug: "exam-prep", Description: "Exam preparation"},
		{Name: "linear-algebra", Slug: "linear-algebra", Description: "Linear algebra topics"},
		{Name: "complexity", Slug: "complexity", Description: "Computational complexity"},
		{Name: "machine-learning", Slug: "machine-learning", Description: "ML and AI topics"},
	}

	bySlug := make(map[string]*models.Tag, len(tags))
	for _, t := range tags {
		if err := tx.Create(t).Error; err != nil {
			return nil, err
		}
		bySlug[t.Slug] = t
	}
	return bySlug, nil
}

func seedCourses(tx *gorm.DB) error {
	courses := []*models.Course{
		{Code: "ECE101", Name: "Introduction to Programming", Description: "Programming fundamentals in C", Semester: 1},
		{Code: "ECE201", Name: "Data Structures & Algorithms", Description: "Core data structures, sorting, graph algorithms", Semester: 3},
		{Code: "ECE205", Name: "Circuit Theory", Description: "KVL, KCL, nodal and mesh analysis", Semester: 3},
		{Code: "ECE301", Name: "Signals and Systems", Description: "Continuous and discrete signals, Fourier analysis", Semester: 5},
		{Code: "ECE305", Name: "Computer Networks", Description: "Protocol stacks, TCP/IP, routing", Semester: 5},
		{Code: "ECE401", Name: "Machine Learning", Description: "Supervised learning, neural networks", Semester: 7},
	}
	for _, c := range courses {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
	}
	return nil
}

type seedPost struct {
	title     string
	content   string
	views     int
	votes     int
	author    string
	category  string
	tagSlugs  []string
	comments  []seedComment
}

type seedComment struct {
	content  string
	author   string
	votes    int
	accepted bool
	// replyToPrev attaches this comment as a reply to the previous
	// top-level comment on the same post.
	replyToPrev bool
}

func seedPosts(tx *gorm.DB, users map[string]*models.User, categories map[string]*models.Category, tags map[string]*models.Tag) error {
	posts := []seedPost{
		{
			title: "How to analyze the time complexity of recursive algorithms?",
			content: "I'm having trouble understanding how to properly analyze the time complexity of recursive algorithms. For example, how would I analyze the following merge sort implementation?\n\n```python\ndef merge_sort(arr):\n    if len(arr) <= 1:\n        return arr\n    mid = len(arr) // 2\n    left = merge_sort(arr[:mid])\n    right = merge_sort(arr[mid:])\n    return merge(left, right)\n```\n\nI know it's O(n log n) but I want to understand the mathematical reasoning behind it using the master theorem or recurrence relations.\n\nAny help would be greatly appreciated!",
			views: 127, votes: 8, author: "nikolas_n", category: "algorithms",
			tagSlugs: []string{"python", "complexity", "homework-help"},
			comments: []seedComment{
				{
					content:  "Great question! To analyze merge sort using the Master Theorem:\n\nThe recurrence relation is: T(n) = 2T(n/2) + O(n)\n\nUsing the Master Theorem with a=2, b=2, and f(n)=n:\n\n- n^(log_b(a)) = n^(log_2(2)) = n^1 = n\n- Since f(n) = Theta(n^(log_b(a))), we're in case 2\n- Therefore, T(n) = Theta(n log n)\n\nHope this helps!",
					author:   "elena_k", votes: 5, accepted: true,
				},
				{
					content:     "Thanks! This makes sense. So the key is that the merge operation takes linear time O(n), and we're dividing the problem in half at each level, giving us log n levels total.",
					author:      "nikolas_n", votes: 2, replyToPrev: true,
				},
				{
					content: "I'd also recommend drawing out the recursion tree. It really helped me visualize why it's O(n log n). Each level does O(n) work and there are log n levels.",
					author:  "maria_mod", votes: 3,
				},
			},
		},
		{
			title: "Understanding Kirchhoff's Voltage Law in Complex Circuits",
			content: "I'm working on a circuit problem and I'm stuck applying KVL to a circuit with multiple loops.\n\nWe have a circuit with two voltage sources (12V and 6V) and three resistors (R1=4, R2=6, R3=3 ohms) arranged in a complex configuration with two loops.\n\n**My question:** When applying KVL to each loop, how do I handle the current direction? Should I assume a direction and then check if the result is negative?\n\nI've tried solving this using nodal analysis but I keep getting the wrong answer compared to the solutions manual.",
			views: 89, votes: 5, author: "george_p", category: "electronics",
			tagSlugs: []string{"circuit-analysis", "homework-help"},
			comments: []seedComment{
				{
					content:  "When applying KVL, you can assume any direction for the current. If your assumption is wrong, you'll get a negative value, which just means the current flows in the opposite direction.\n\nHere's the approach:\n\n1. Assume a direction for each current\n2. Apply KVL to each independent loop\n3. Solve the system of equations\n4. Interpret negative currents as flowing opposite to your assumption\n\nMake sure you're consistent with your sign conventions!",
					author:   "elena_k", votes: 4, accepted: true,
				},
				{
					content: "Also, double-check that you're correctly accounting for voltage drops across resistors. The voltage drop is always in the direction of current flow, using V=IR.",
					author:  "anna_g", votes: 2,
				},
			},
		},
		{
			title: "Best resources for learning Fourier Transforms?",
			content: "I'm taking Signal Processing this semester and I'm finding Fourier Transforms really challenging. The professor goes through the material quickly and I need some supplementary resources.\n\nWhat I'm looking for:\n\n- Good YouTube channels or online courses\n- Practice problems with solutions\n- Intuitive explanations (not just mathematical proofs)\n\nI understand the basic concept that we're decomposing signals into sine and cosine waves, but I struggle with:\n\n1. The mathematical notation and integrals\n2. Understanding when to use DFT vs FFT vs continuous FT\n3. Practical applications\n\nAny recommendations would be super helpful!",
			views: 156, votes: 12, author: "dimitris_s", category: "signal-processing",
			tagSlugs: []string{"fourier", "exam-prep"},
			comments: []seedComment{
				{
					content:  "I highly recommend 3Blue1Brown's video series on Fourier Transforms! The visualization is amazing and really builds intuition.\n\nFor practice problems, check out \"Signals and Systems\" by Oppenheim.\n\nAs for when to use each type:\n\n- **Continuous FT:** theoretical analysis of continuous signals\n- **DFT:** when working with discrete/sampled signals\n- **FFT:** fast algorithm for computing DFT (use this in practice!)",
					author:   "elena_k", votes: 8, accepted: true,
				},
				{
					content: "Also check out the MIT OpenCourseWare lectures on Signal Processing. They're free and very comprehensive!",
					author:  "nikolas_n", votes: 4,
				},
				{
					content: "For practical applications, try implementing a simple audio equalizer or spectrum analyzer. It really helps connect the theory to real-world uses!",
					author:  "maria_mod", votes: 3,
				},
			},
		},
		{
			title: "Arduino project: Temperature monitoring system",
			content: "Hey everyone! I just finished a cool Arduino project and wanted to share it with the community.\n\n**Project:** Temperature and Humidity Monitoring System with LCD Display\n\n**Components used:**\n\n- Arduino Uno\n- DHT22 temperature/humidity sensor\n- 16x2 LCD display\n- Breadboard and jumper wires\n\n**Features:**\n\n- Real-time temperature and humidity readings\n- Warning LED when temperature exceeds threshold\n- Data logging to SD card (optional)\n\nThe code is available on my GitHub if anyone's interested. If you have any questions about the implementation or want to suggest improvements, feel free to ask!",
			views: 203, votes: 15, author: "george_p", category: "embedded",
			tagSlugs: []string{"arduino", "c-cpp"},
			comments: []seedComment{
				{
					content: "Nice project! How accurate is the DHT22? I've been considering using it for a similar project but I've heard it can be a bit noisy.",
					author:  "dimitris_s", votes: 2,
				},
				{
					content: "This is great! Could you share the GitHub link? I'm working on something similar and would love to see your code structure.",
					author:  "anna_g", votes: 3,
				},
			},
		},
		{
			title: "Linear Algebra: Eigenvalues and Eigenvectors intuition",
			content: "I can calculate eigenvalues and eigenvectors mechanically by solving the characteristic equation, but I don't really understand what they *mean* geometrically.\n\nFor example, given a matrix:\n\n```\nA = | 2  1 |\n    | 1  2 |\n```\n\nI can find the eigenvalues 3 and 1 with corresponding eigenvectors, but what does this tell me about the transformation represented by matrix A?\n\nI've heard that eigenvectors represent \"directions that don't change\" under the transformation and eigenvalues represent \"how much they scale\", but I'm having trouble visualizing this.\n\nCould someone provide a clear geometric interpretation or maybe point me to good visualization tools?",
			views: 178, votes: 10, author: "anna_g", category: "mathematics",
			tagSlugs: []string{"linear-algebra", "homework-help"},
			comments: []seedComment{
				{
					content:  "Think of it this way: when you multiply a matrix A by a vector v, you're transforming that vector. Most vectors change both direction AND magnitude.\n\nBut eigenvectors are special. They only change in magnitude (scaled by the eigenvalue), not direction!\n\nFor your example:\n\n- The eigenvector for eigenvalue 3 gets stretched by 3x but keeps its direction\n- The eigenvector for eigenvalue 1 stays the same size\n\nCheck out this visualization tool: setosa.io/ev/eigenvectors-and-eigenvalues/",
					author:   "elena_k", votes: 7, accepted: true,
				},
			},
		},
		{
			title: "TCP vs UDP: When to use which protocol?",
			content: "I'm working on a network programming assignment where I need to implement a client-server application. I'm confused about when I should use TCP vs UDP.\n\nI understand that:\n\n- TCP is connection-oriented and reliable\n- UDP is connectionless and faster but unreliable\n\nBut in practice, how do I decide? For my assignment, I'm building a simple chat application. Should I use TCP for the text messages and UDP for something like typing indicators?\n\nAlso, what about video streaming applications? I've heard they use UDP, but then how do they handle packet loss?",
			views: 142, votes: 7, author: "nikolas_n", category: "networks",
			tagSlugs: []string{"tcp-ip", "java"},
			comments: []seedComment{
				{
					content:  "For a chat application, definitely use TCP! You want guaranteed delivery of messages in order.\n\nUse UDP when:\n\n- Speed is more important than reliability (gaming, live video)\n- You can tolerate some packet loss\n- You're implementing your own reliability on top (like QUIC)\n\nFor video streaming, UDP is preferred because a few dropped frames are better than delayed frames, retransmitting old video data doesn't make sense, and lower latency is critical for live streaming.",
					author:   "maria_mod", votes: 5, accepted: true,
				},
			},
		},
		{
			title: "Machine Learning course recommendations",
			content: "Hi everyone! I'm planning my courses for next semester and I want to take a machine learning course. I see there are two options:\n\n1. **Introduction to Machine Learning** covering basics, linear regression, classification, SVMs\n2. **Deep Learning and Neural Networks** which is more advanced and focuses on CNNs, RNNs, transformers\n\nI have a good background in linear algebra, probability and statistics, Python programming, and algorithms, but I haven't taken any ML courses before. Should I start with the intro course or can I jump into deep learning directly?\n\nAlso, how much time commitment do these courses require outside of class? I'm already taking 4 other technical courses.",
			views: 94, votes: 6, author: "anna_g", category: "general",
			tagSlugs: []string{"machine-learning", "python"},
			comments: []seedComment{
				{
					content: "I'd definitely recommend starting with the intro course first. While you have the prerequisites for deep learning, the intro course will give you important foundations like feature engineering, model evaluation and validation, overfitting/underfitting concepts, and the different types of learning problems.\n\nThese concepts apply to all of ML, including deep learning. You'll appreciate the deep learning course much more with this foundation.",
					author:  "elena_k", votes: 4,
				},
				{
					content: "Both courses are time-intensive! Expect 10-15 hours/week for either one. With 4 other technical courses, you might want to reconsider your schedule or plan to take ML in a lighter semester.",
					author:  "maria_mod", votes: 2,
				},
			},
		},
		{
			title: "Help with Dynamic Programming - Longest Common Subsequence",
			content: "I'm stuck on the LCS (Longest Common Subsequence) problem. I understand the recursive solution but I'm having trouble converting it to a DP solution.\n\n**Recursive solution I have:**\n\n```python\ndef lcs(X, Y, m, n):\n    if m == 0 or n == 0:\n        return 0\n    if X[m-1] == Y[n-1]:\n        return 1 + lcs(X, Y, m-1, n-1)\n    else:\n        return max(lcs(X, Y, m, n-1), lcs(X, Y, m-1, n))\n```\n\nI know I need to use a 2D table for memoization, but I'm confused about:\n\n1. What do the table dimensions represent?\n2. How do I fill the table (bottom-up vs top-down)?\n3. How do I reconstruct the actual subsequence from the table?\n\nAny step-by-step explanation would be really helpful!",
			views: 67, votes: 4, author: "dimitris_s", category: "algorithms",
			tagSlugs: []string{"python", "homework-help"},
		},
	}

	for _, sp := range posts {
		author, ok := users[sp.author]
		if !ok {
			return fmt.Errorf("unknown seed author %q", sp.author)
		}
		category, ok := categories[sp.category]
		if !ok {
			return fmt.Errorf("unknown seed category %q", sp.category)
		}

		post := &models.Post{
			Title:      sp.title,
			Content:    sp.content,
			Published:  true,
			ViewCount:  sp.views,
			VoteCount:  sp.votes,
			UserID:     author.ID,
			CategoryID: &category.ID,
		}
		for _, slug := range sp.tagSlugs {
			tag, ok := tags[slug]
			if !ok {
				return fmt.Errorf("unknown seed tag %q", slug)
			}
			post.Tags = append(post.Tags, *tag)
		}
		if err := tx.Create(post).Error; err != nil {
			return err
		}

		var prevTopLevel *models.Comment
		for _, sc := range sp.comments {
			commenter, ok := users[sc.author]
			if !ok {
				return fmt.Errorf("unknown seed commenter %q", sc.author)
			}

			comment := &models.Comment{
				Content:    sc.content,
				UserID:     commenter.ID,
				PostID:     post.ID,
				VoteCount:  sc.votes,
				IsAccepted: sc.accepted,
			}
			if sc.replyToPrev && prevTopLevel != nil {
				comment.ParentID = &prevTopLevel.ID
			}
			if err := tx.Create(comment).Error; err != nil {
				return err
			}
			if comment.ParentID == nil {
				prevTopLevel = comment
			}
		}
	}

	return nil
}
