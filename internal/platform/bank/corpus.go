package bank

import (
	"github.com/phrazzld/pace-api/internal/content"
	"github.com/phrazzld/pace-api/internal/domain"
)

// The built-in corpus. Questions follow real IELTS test formats; listening
// and reading entries are multiple choice, writing entries are essay or
// chart tasks, speaking entries are part 1-3 prompts.

var listeningQuestions = []content.Question{
	{
		ID:     "L001",
		Skill:  domain.SkillListening,
		Type:   content.TypeMultipleChoice,
		Prompt: "What is the main purpose of the library tour?",
		Options: []string{
			"To show students where to find books",
			"To introduce library facilities and services",
			"To explain how to use the computers",
			"To demonstrate the online catalog system",
		},
		Answer:      1,
		Difficulty:  content.DifficultyMedium,
		Explanation: `The librarian mentions they will give a "quick tour of our facilities" and covers various services like circulation desk, reference section, study rooms, etc.`,
	},
	{
		ID:          "L002",
		Skill:       domain.SkillListening,
		Type:        content.TypeMultipleChoice,
		Prompt:      "What time does the library close on Fridays?",
		Options:     []string{"6 PM", "8 PM", "4 PM", "10 PM"},
		Answer:      0,
		Difficulty:  content.DifficultyEasy,
		Explanation: `The librarian specifically states "8 AM to 6 PM on Fridays."`,
	},
	{
		ID:          "L003",
		Skill:       domain.SkillListening,
		Type:        content.TypeMultipleChoice,
		Prompt:      "How many study rooms are available for group work?",
		Options:     []string{"12", "24", "36", "48"},
		Answer:      1,
		Difficulty:  content.DifficultyMedium,
		Explanation: `The librarian mentions "24 study rooms available for group work."`,
	},
	{
		ID:     "L004",
		Skill:  domain.SkillListening,
		Type:   content.TypeMultipleChoice,
		Prompt: "Where are back issues of periodicals located?",
		Options: []string{
			"On the first floor",
			"In the media room",
			"On the second floor",
			"In the reference section",
		},
		Answer:      1,
		Difficulty:  content.DifficultyMedium,
		Explanation: `The librarian states "Back issues are available on microfilm in the media room next door" when discussing the periodicals section on the second floor.`,
	},
	{
		ID:     "L005",
		Skill:  domain.SkillListening,
		Type:   content.TypeMultipleChoice,
		Prompt: "What is included in the hall rental prices?",
		Options: []string{
			"Only room rental",
			"Room and utilities",
			"Room, utilities, and internet",
			"Room, utilities, internet, and food",
		},
		Answer:      2,
		Difficulty:  content.DifficultyMedium,
		Explanation: `The housing officer states "These prices include utilities and internet access."`,
	},
	{
		ID:          "L006",
		Skill:       domain.SkillListening,
		Type:        content.TypeMultipleChoice,
		Prompt:      "On which day does the student orientation take place?",
		Options:     []string{"Monday", "Wednesday", "Thursday", "Saturday"},
		Answer:      2,
		Difficulty:  content.DifficultyEasy,
		Explanation: `The speaker confirms the orientation is "this Thursday at 10 AM in the main hall."`,
	},
	{
		ID:     "L007",
		Skill:  domain.SkillListening,
		Type:   content.TypeMultipleChoice,
		Prompt: "What change to the bus timetable does the council spokesperson announce?",
		Options: []string{
			"Weekend services will run every twenty minutes",
			"The late-night route will be withdrawn",
			"Two new stops will be added near the hospital",
			"Fares will rise on express routes only",
		},
		Answer:      1,
		Difficulty:  content.DifficultyHard,
		Explanation: "The spokesperson explains the late-night route is being withdrawn due to low passenger numbers, while the other changes are only under consultation.",
	},
	{
		ID:     "L008",
		Skill:  domain.SkillListening,
		Type:   content.TypeMultipleChoice,
		Prompt: "According to the lecturer, why did early navigators prefer coastal routes?",
		Options: []string{
			"Open-sea crossings required larger crews",
			"Landmarks made position-finding reliable",
			"Coastal waters had more predictable winds",
			"Trade was concentrated in river deltas",
		},
		Answer:      1,
		Difficulty:  content.DifficultyHard,
		Explanation: "The lecturer stresses that visible landmarks let navigators confirm their position long before instruments made open-sea navigation practical.",
	},
}

var readingQuestions = []content.Question{
	{
		ID:     "R001",
		Skill:  domain.SkillReading,
		Type:   content.TypeMultipleChoice,
		Prompt: `According to the passage, what is "ambient intimacy"?`,
		Options: []string{
			"A feeling of constant connection regardless of location",
			"The intimacy between close family members",
			"Privacy in public spaces",
			"The warmth of face-to-face communication",
		},
		Answer:      0,
		Difficulty:  content.DifficultyMedium,
		Explanation: `The passage defines ambient intimacy as "a state where people feel constantly connected to their social network regardless of physical location."`,
	},
	{
		ID:     "R002",
		Skill:  domain.SkillReading,
		Type:   content.TypeMultipleChoice,
		Prompt: "What psychological effects are associated with heavy social media use?",
		Options: []string{
			"Improved self-confidence and reduced anxiety",
			"Increased anxiety, depression, and loneliness",
			"Better communication skills and social skills",
			"No significant psychological effects",
		},
		Answer:      1,
		Difficulty:  content.DifficultyMedium,
		Explanation: `The passage states "Research indicates that heavy social media use is associated with increased rates of anxiety, depression, and feelings of loneliness."`,
	},
	{
		ID:     "R003",
		Skill:  domain.SkillReading,
		Type:   content.TypeMultipleChoice,
		Prompt: "How has social media affected small businesses?",
		Options: []string{
			"It has made it harder for them to compete",
			"It has created a more level playing field with larger companies",
			"It has eliminated the need for traditional marketing",
			"It has had no impact on small business success",
		},
		Answer:      1,
		Difficulty:  content.DifficultyMedium,
		Explanation: `The passage mentions "Small businesses can compete with larger corporations on a more level playing field, as creativity and engagement often matter more than budget size."`,
	},
	{
		ID:     "R004",
		Skill:  domain.SkillReading,
		Type:   content.TypeMultipleChoice,
		Prompt: "What solution has Rotterdam implemented for flooding?",
		Options: []string{
			"Underground water storage tanks",
			"Sea walls and elevated buildings",
			"Water squares that serve as retention basins",
			"Floating houses and offices",
		},
		Answer:      2,
		Difficulty:  content.DifficultyHard,
		Explanation: `The passage states "Rotterdam has pioneered 'water squares' - public spaces that double as water retention basins during heavy rainfall."`,
	},
	{
		ID:     "R005",
		Skill:  domain.SkillReading,
		Type:   content.TypeMultipleChoice,
		Prompt: "How does Singapore address urban heat islands?",
		Options: []string{
			"By installing more air conditioning units",
			"Through extensive greenery requirements for buildings",
			"By using white paint on all buildings",
			"By reducing the number of vehicles in the city",
		},
		Answer:      1,
		Difficulty:  content.DifficultyHard,
		Explanation: `The passage mentions "Singapore has implemented extensive greenery requirements for new buildings, resulting in noticeably lower ambient temperatures."`,
	},
	{
		ID:     "R006",
		Skill:  domain.SkillReading,
		Type:   content.TypeMultipleChoice,
		Prompt: "What does the writer say most visitors to the science museum do first?",
		Options: []string{
			"Join a guided tour",
			"Head for the interactive gallery",
			"Watch the introductory film",
			"Visit the gift shop",
		},
		Answer:      2,
		Difficulty:  content.DifficultyEasy,
		Explanation: `The opening paragraph notes that "almost every visitor begins with the fifteen-minute introductory film."`,
	},
	{
		ID:     "R007",
		Skill:  domain.SkillReading,
		Type:   content.TypeMultipleChoice,
		Prompt: "According to the passage, why was the community garden started?",
		Options: []string{
			"To supply a local restaurant",
			"To make use of derelict land",
			"To teach schoolchildren about farming",
			"To reduce household food bills",
		},
		Answer:      1,
		Difficulty:  content.DifficultyEasy,
		Explanation: `The passage explains the garden "began as a residents' project to reclaim a strip of derelict land behind the railway."`,
	},
}

var writingPrompts = []content.Question{
	{
		ID:          "W001",
		Skill:       domain.SkillWriting,
		Type:        content.TypeEssay,
		Prompt:      "Some people believe that technology has made education more effective and accessible, while others argue that it has created more problems than it has solved.\n\nDiscuss both views and give your own opinion.",
		Answer:      -1,
		Difficulty:  content.DifficultyMedium,
		Explanation: `This is a classic "discuss both views and give your opinion" essay topic that tests balanced argumentation skills.`,
	},
	{
		ID:          "W002",
		Skill:       domain.SkillWriting,
		Type:        content.TypeEssay,
		Prompt:      "In many countries, the proportion of older people is increasing steadily. What problems does this cause for individuals and society? What measures could be taken to deal with this situation?",
		Answer:      -1,
		Difficulty:  content.DifficultyMedium,
		Explanation: `This is a "problems and solutions" essay topic that requires analyzing demographic changes and proposing practical solutions.`,
	},
	{
		ID:          "W003",
		Skill:       domain.SkillWriting,
		Type:        content.TypeEssay,
		Prompt:      "Some people think that parents should teach children how to be good members of society. Others believe that school is the place to learn this.\n\nDiscuss both views and give your own opinion.",
		Answer:      -1,
		Difficulty:  content.DifficultyEasy,
		Explanation: "This education-focused topic tests understanding of socialization and the role of different institutions in character development.",
	},
	{
		ID:          "W004",
		Skill:       domain.SkillWriting,
		Type:        content.TypeEssay,
		Prompt:      "Environmental problems are too big for individual countries and individual people to address. We have reached the stage where the only way to protect the environment is at an international level.\n\nTo what extent do you agree or disagree?",
		Answer:      -1,
		Difficulty:  content.DifficultyHard,
		Explanation: "This environmental topic requires understanding of global cooperation and the limitations of individual action in addressing climate change.",
	},
	{
		ID:          "W005",
		Skill:       domain.SkillWriting,
		Type:        content.TypeChartTask,
		Prompt:      "The chart below shows the percentage of household income spent on food, housing, clothing, and entertainment in five different countries.\n\nSummarise the information by selecting and reporting the main features, and make comparisons where relevant.",
		Answer:      -1,
		Difficulty:  content.DifficultyMedium,
		Explanation: "This Task 1 academic writing question tests data interpretation and comparison skills.",
	},
}

var speakingQuestions = []content.Question{
	{
		ID:          "S001",
		Skill:       domain.SkillSpeaking,
		Type:        content.TypeSpeakingPart1,
		Prompt:      "What do you usually do in your free time?",
		Answer:      -1,
		Difficulty:  content.DifficultyEasy,
		Explanation: "Part 1 questions are personal and designed to warm up the candidate.",
	},
	{
		ID:          "S002",
		Skill:       domain.SkillSpeaking,
		Type:        content.TypeSpeakingPart1,
		Prompt:      "Do you prefer spending time alone or with friends?",
		Answer:      -1,
		Difficulty:  content.DifficultyEasy,
		Explanation: "This personal preference question tests the ability to express opinions and provide reasons.",
	},
	{
		ID:          "S003",
		Skill:       domain.SkillSpeaking,
		Type:        content.TypeSpeakingPart1,
		Prompt:      "What hobbies did you have as a child?",
		Answer:      -1,
		Difficulty:  content.DifficultyEasy,
		Explanation: "This past tense question tests the ability to talk about personal experiences.",
	},
	{
		ID:          "S004",
		Skill:       domain.SkillSpeaking,
		Type:        content.TypeSpeakingPart2,
		Prompt:      "Describe a memorable journey you have taken.\n\nYou should say:\n- Where you went\n- Who you went with\n- What you did during the journey\n- And explain why this journey was memorable for you",
		Answer:      -1,
		Difficulty:  content.DifficultyMedium,
		Explanation: "Part 2 cue cards test the ability to speak at length on a given topic with appropriate structure.",
	},
	{
		ID:          "S005",
		Skill:       domain.SkillSpeaking,
		Type:        content.TypeSpeakingPart3,
		Prompt:      "How has tourism changed in your country over the past few decades?",
		Answer:      -1,
		Difficulty:  content.DifficultyHard,
		Explanation: "Part 3 questions are more abstract and require analytical thinking about broader issues.",
	},
	{
		ID:          "S006",
		Skill:       domain.SkillSpeaking,
		Type:        content.TypeSpeakingPart3,
		Prompt:      "What are the advantages and disadvantages of international tourism?",
		Answer:      -1,
		Difficulty:  content.DifficultyHard,
		Explanation: "This question tests the ability to discuss complex issues from multiple perspectives.",
	},
	{
		ID:          "S007",
		Skill:       domain.SkillSpeaking,
		Type:        content.TypeSpeakingPart2,
		Prompt:      "Describe a skill you would like to learn.\n\nYou should say:\n- What the skill is\n- Why you want to learn it\n- How you would learn it\n- And explain how this skill would help you",
		Answer:      -1,
		Difficulty:  content.DifficultyMedium,
		Explanation: "This cue card tests the ability to talk about future plans and hypothetical situations.",
	},
}

// corpus groups the built-in questions by skill.
var corpus = map[domain.Skill][]content.Question{
	domain.SkillListening: listeningQuestions,
	domain.SkillReading:   readingQuestions,
	domain.SkillWriting:   writingPrompts,
	domain.SkillSpeaking:  speakingQuestions,
}
