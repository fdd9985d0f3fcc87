package persona

var canned = map[Category]string{
	LifeStory:         "My journey is defined by a relentless curiosity for AI and machine learning. From conducting research for academic projects to supporting student research papers, I've been driven by a desire to leverage technology to solve complex problems and continuously learn.",
	Superpower:        "My #1 superpower is adaptability in technical problem-solving. Whether it's implementing ML models using TensorFlow and PyTorch or guiding students through research challenges, I can quickly understand complex scenarios and develop innovative solutions.",
	GrowthAreas:       "I'm focused on expanding my expertise in generative AI technologies, developing more advanced deep learning and computer vision skills, and enhancing my ability to translate complex technical concepts for diverse audiences.",
	Misconception:     "Colleagues might perceive me as purely technical, but I'm equally passionate about communication and collaborative learning. My work isn't just about coding—it's about creating meaningful technological solutions and helping others understand them.",
	PushingBoundaries: "I consistently push my boundaries by taking on diverse research projects, exploring emerging technologies like generative AI, and challenging myself to learn across different domains—from cybersecurity simulations to data analytics. Each new project is an opportunity to expand my capabilities.",
}

// Lookup returns the canned answer for c. The boolean is false for None and
// for any category without an answer; callers then fall through to the model.
func Lookup(c Category) (string, bool) {
	answer, ok := canned[c]
	return answer, ok
}
