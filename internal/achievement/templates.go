package achievement

// Template is a typed blueprint for a synthesized achievement.
type Template struct {
	Title       string
	Description string
	Icon        string
	Category    Category
	Points      int
}

// Templates is the closed library the pool draws from.
var Templates = []Template{
	{Title: "Code Explorer", Description: "Try a language feature you have never used before", Icon: "🧭", Category: CategorySpecial, Points: 50},
	{Title: "Bug Hunter", Description: "Track down and fix a bug in one of your projects", Icon: "🐛", Category: CategoryProject, Points: 75},
	{Title: "Refactor Master", Description: "Refactor a module until you are proud of it", Icon: "🔧", Category: CategoryProject, Points: 75},
	{Title: "Test Champion", Description: "Write tests that cover a whole package", Icon: "🧪", Category: CategoryProject, Points: 75},
	{Title: "Documentation Hero", Description: "Write a README that explains your project clearly", Icon: "📝", Category: CategoryProject, Points: 50},
	{Title: "Algorithm Ace", Description: "Solve a hard algorithm problem without hints", Icon: "🧠", Category: CategoryLeetcode, Points: 100},
	{Title: "Data Structure Guru", Description: "Implement a data structure from scratch", Icon: "🏗️", Category: CategoryLeetcode, Points: 75},
	{Title: "Binary Search Pro", Description: "Solve five binary search problems", Icon: "🔍", Category: CategoryLeetcode, Points: 50},
	{Title: "Graph Navigator", Description: "Solve three graph traversal problems", Icon: "🕸️", Category: CategoryLeetcode, Points: 75},
	{Title: "Dynamic Thinker", Description: "Solve three dynamic programming problems", Icon: "🧮", Category: CategoryLeetcode, Points: 100},
	{Title: "Two Pointer Tactician", Description: "Solve five two-pointer problems", Icon: "👉", Category: CategoryLeetcode, Points: 50},
	{Title: "Sliding Window Sage", Description: "Solve three sliding window problems", Icon: "🪟", Category: CategoryLeetcode, Points: 50},
	{Title: "Tree Climber", Description: "Solve five tree problems", Icon: "🌳", Category: CategoryLeetcode, Points: 50},
	{Title: "Heap Handler", Description: "Solve three heap problems", Icon: "⛰️", Category: CategoryLeetcode, Points: 50},
	{Title: "Backtracking Builder", Description: "Solve three backtracking problems", Icon: "↩️", Category: CategoryLeetcode, Points: 75},
	{Title: "Bit Wizard", Description: "Solve three bit manipulation problems", Icon: "💡", Category: CategoryLeetcode, Points: 50},
	{Title: "Speed Solver", Description: "Solve a medium problem in under twenty minutes", Icon: "⚡", Category: CategoryLeetcode, Points: 75},
	{Title: "Contest Contender", Description: "Take part in an online coding contest", Icon: "🏁", Category: CategoryLeetcode, Points: 100},
	{Title: "Daily Challenger", Description: "Solve the daily challenge three days in a row", Icon: "📅", Category: CategoryDaily, Points: 50},
	{Title: "Morning Routine", Description: "Study before breakfast", Icon: "🌅", Category: CategoryDaily, Points: 25},
	{Title: "Lunch Learner", Description: "Squeeze a study session into your lunch break", Icon: "🥪", Category: CategoryDaily, Points: 25},
	{Title: "Evening Scholar", Description: "Finish the day with a focused session", Icon: "🌙", Category: CategoryDaily, Points: 25},
	{Title: "Focus Mode", Description: "Study for ninety minutes without a break", Icon: "🎯", Category: CategoryTime, Points: 50},
	{Title: "Deep Work", Description: "Complete two deep work sessions in one day", Icon: "🏊", Category: CategoryTime, Points: 75},
	{Title: "Pomodoro Pro", Description: "Complete eight pomodoros in a day", Icon: "🍅", Category: CategoryTime, Points: 50},
	{Title: "Half Marathon", Description: "Study for two and a half hours in a single session", Icon: "🏃", Category: CategoryTime, Points: 50},
	{Title: "Weekly Planner", Description: "Plan every study session of the week ahead", Icon: "🗓️", Category: CategoryDaily, Points: 25},
	{Title: "Review Ritual", Description: "Review last week's notes", Icon: "🔁", Category: CategoryDaily, Points: 25},
	{Title: "Note Taker", Description: "Write notes for every session this week", Icon: "📓", Category: CategoryDaily, Points: 25},
	{Title: "Flashcard Fanatic", Description: "Build a flashcard deck for a topic", Icon: "🗂️", Category: CategoryProgress, Points: 25},
	{Title: "Concept Mapper", Description: "Draw a concept map for a topic", Icon: "🗺️", Category: CategoryProgress, Points: 25},
	{Title: "Teach Back", Description: "Explain a topic out loud as if teaching it", Icon: "🎓", Category: CategorySocial, Points: 50},
	{Title: "Study Buddy", Description: "Study with a friend", Icon: "🤝", Category: CategorySocial, Points: 50},
	{Title: "Pair Programmer", Description: "Pair program on a problem", Icon: "👥", Category: CategorySocial, Points: 50},
	{Title: "Code Reviewer", Description: "Review someone else's code", Icon: "👀", Category: CategorySocial, Points: 50},
	{Title: "Question Asker", Description: "Ask a well-formed question in a community forum", Icon: "❓", Category: CategorySocial, Points: 25},
	{Title: "Helpful Hand", Description: "Answer someone's question in a community forum", Icon: "🙋", Category: CategorySocial, Points: 50},
	{Title: "Open Source Starter", Description: "Open your first issue on an open source project", Icon: "🌱", Category: CategorySocial, Points: 50},
	{Title: "Conference Goer", Description: "Watch a full conference talk and take notes", Icon: "🎤", Category: CategorySocial, Points: 25},
	{Title: "Podcast Learner", Description: "Listen to a technical podcast episode", Icon: "🎧", Category: CategorySpecial, Points: 25},
	{Title: "Book Worm", Description: "Finish a technical book", Icon: "📚", Category: CategoryProgress, Points: 100},
	{Title: "Chapter Chaser", Description: "Read three chapters of a technical book", Icon: "📖", Category: CategoryProgress, Points: 50},
	{Title: "Paper Reader", Description: "Read a research paper end to end", Icon: "📄", Category: CategoryProgress, Points: 75},
	{Title: "Video Voyager", Description: "Finish a video course module", Icon: "🎬", Category: CategoryProgress, Points: 50},
	{Title: "Course Finisher", Description: "Complete an online course", Icon: "🏆", Category: CategoryProgress, Points: 150},
	{Title: "Cheat Sheet Creator", Description: "Write a cheat sheet for a topic", Icon: "📋", Category: CategoryProgress, Points: 25},
	{Title: "System Designer", Description: "Sketch the design of a system you use daily", Icon: "🏛️", Category: CategoryProject, Points: 100},
	{Title: "API Architect", Description: "Design and document an API", Icon: "🔌", Category: CategoryProject, Points: 75},
	{Title: "Database Diver", Description: "Model a schema and write the queries for it", Icon: "🗄️", Category: CategoryProject, Points: 75},
	{Title: "Cloud Climber", Description: "Deploy a project to the cloud", Icon: "☁️", Category: CategoryProject, Points: 100},
	{Title: "Container Captain", Description: "Containerize one of your projects", Icon: "🐳", Category: CategoryProject, Points: 75},
	{Title: "Pipeline Plumber", Description: "Set up continuous integration for a project", Icon: "🚰", Category: CategoryProject, Points: 75},
	{Title: "Security Sentinel", Description: "Fix a security issue in your own code", Icon: "🛡️", Category: CategoryProject, Points: 75},
	{Title: "Performance Tuner", Description: "Make a slow piece of code twice as fast", Icon: "🏎️", Category: CategoryProject, Points: 100},
	{Title: "Side Project Spark", Description: "Start a new side project", Icon: "✨", Category: CategoryProject, Points: 50},
	{Title: "Shipping Season", Description: "Ship a feature to real users", Icon: "🚢", Category: CategoryProject, Points: 150},
	{Title: "Demo Day", Description: "Record a demo of one of your projects", Icon: "📹", Category: CategoryProject, Points: 50},
	{Title: "Portfolio Polish", Description: "Update your portfolio with a recent project", Icon: "🖼️", Category: CategoryMilestone, Points: 50},
	{Title: "Resume Refresh", Description: "Update your resume with new skills", Icon: "📄", Category: CategoryMilestone, Points: 50},
	{Title: "Mock Interviewer", Description: "Do a mock interview as the interviewer", Icon: "🎙️", Category: CategorySocial, Points: 75},
	{Title: "Behavioral Prep", Description: "Prepare five stories for behavioral questions", Icon: "🗣️", Category: CategoryMilestone, Points: 50},
	{Title: "Whiteboard Warrior", Description: "Solve a problem on a whiteboard", Icon: "🧑‍🏫", Category: CategoryLeetcode, Points: 50},
	{Title: "Complexity Critic", Description: "Analyze the complexity of ten solutions", Icon: "📈", Category: CategoryLeetcode, Points: 50},
	{Title: "Edge Case Explorer", Description: "Find an edge case your first solution missed", Icon: "🧩", Category: CategoryLeetcode, Points: 25},
	{Title: "Language Hopper", Description: "Solve the same problem in two languages", Icon: "🔀", Category: CategorySpecial, Points: 50},
	{Title: "Tool Tinkerer", Description: "Learn a new developer tool", Icon: "🛠️", Category: CategorySpecial, Points: 25},
	{Title: "Shortcut Savant", Description: "Learn ten editor shortcuts", Icon: "⌨️", Category: CategorySpecial, Points: 25},
	{Title: "Terminal Tamer", Description: "Automate a chore with a shell script", Icon: "🐚", Category: CategorySpecial, Points: 50},
	{Title: "Weekend Builder", Description: "Build something over a weekend", Icon: "🧱", Category: CategorySpecial, Points: 75},
	{Title: "Early Riser", Description: "Start three sessions before seven in the morning", Icon: "⏰", Category: CategorySpecial, Points: 50},
	{Title: "Midnight Oil", Description: "Finish a session after midnight", Icon: "🕯️", Category: CategorySpecial, Points: 25},
	{Title: "Comeback Kid", Description: "Return to studying after a week away", Icon: "💪", Category: CategoryStreak, Points: 50},
	{Title: "Steady Pace", Description: "Study at least thirty minutes five days in a row", Icon: "🐢", Category: CategoryStreak, Points: 50},
	{Title: "Unbroken Chain", Description: "Keep a streak going through a busy week", Icon: "⛓️", Category: CategoryStreak, Points: 75},
	{Title: "Goal Setter", Description: "Write down goals for the next month", Icon: "🥅", Category: CategoryMilestone, Points: 25},
	{Title: "Goal Getter", Description: "Reach a goal you set last month", Icon: "🎉", Category: CategoryMilestone, Points: 100},
	{Title: "Reflection Time", Description: "Write a retrospective of the past phase", Icon: "🪞", Category: CategoryPhase, Points: 50},
	{Title: "Phase Planner", Description: "Plan the topics of the next phase", Icon: "🧭", Category: CategoryPhase, Points: 25},
	{Title: "Milestone Marker", Description: "Celebrate a milestone with a short write-up", Icon: "🏅", Category: CategoryMilestone, Points: 50},
	{Title: "Curiosity Cat", Description: "Follow a rabbit hole and write up what you learned", Icon: "🐱", Category: CategorySpecial, Points: 50},
	{Title: "Knowledge Sharer", Description: "Share something you learned this week", Icon: "📣", Category: CategorySocial, Points: 50},
}
